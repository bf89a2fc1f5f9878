package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Заполняются через -ldflags "-X umbrella-rogue/internal/version.Version=..."
var (
	Version   string
	BuildDate string // YYYY-MM-DD (UTC)
	Commit    string
)

// VersionInfo описывает сборку в структурированном виде (ответ /version)
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date,omitempty"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ParseBuildDate проверяет формат BuildDate
func ParseBuildDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, fmt.Errorf("build date is empty")
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	return t, nil
}

// Info собирает сведения о сборке. Чего нет в ldflags, берётся из debug.BuildInfo.
func Info() VersionInfo {
	info := VersionInfo{
		Version:   coalesce(Version, "dev"),
		BuildDate: BuildDate,
		Commit:    Commit,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	info.Commit = coalesce(info.Commit, "unknown")

	if BuildDate != "" {
		if _, err := ParseBuildDate(BuildDate); err != nil {
			info.Error = err.Error()
		}
	}
	return info
}

// String возвращает строку для лога при старте
func String() string {
	info := Info()
	s := fmt.Sprintf("umbrella-rogue %s commit[%s] built[%s]", info.Version, info.Commit, coalesce(info.BuildDate, "unknown"))
	if info.Dirty {
		s += " (dirty)"
	}
	return s
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
