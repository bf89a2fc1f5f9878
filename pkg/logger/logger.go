package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// Создаётся сразу, чтобы пакеты могли логировать ещё до Init (например, в тестах).
var Log = logrus.New()

// Init настраивает глобальный логгер из переменных окружения LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз при старте приложения, до загрузки конфига.
func Init() {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	Configure(level, os.Getenv("LOG_FORMAT"))
}

// Configure применяет уровень и формат логирования.
// "json" - для продакшена и сбора логов, всё остальное - текст для разработки.
func Configure(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
