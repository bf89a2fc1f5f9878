package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/engine"
	"umbrella-rogue/internal/infrastructure/storage"
	"umbrella-rogue/internal/version"
	"umbrella-rogue/pkg/dungeon"
	"umbrella-rogue/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Server раздаёт игру по WebSocket. Игра однопользовательская:
// одновременно обслуживается только одно подключение, остальные получают ERROR.
type Server struct {
	cfg    *config.Config
	store  storage.SlotStore
	tables *dungeon.Tables

	mu     sync.Mutex
	active *engine.GameService

	// Подключения живут вне http.Server: Shutdown их не ждёт
	connMu  sync.Mutex
	clients map[*Client]struct{}
	wg      sync.WaitGroup
}

func New(cfg *config.Config, store storage.SlotStore, tables *dungeon.Tables) *Server {
	return &Server{
		cfg:     cfg,
		store:   store,
		tables:  tables,
		clients: make(map[*Client]struct{}),
	}
}

// Handler собирает роутер сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	NewDebugHandler(s).RegisterRoutes(mux)
	return mux
}

// Run слушает порт до отмены ctx, затем останавливает сервер за ShutdownTimeout
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Infof("Umbrella Rogue server running on :%s", s.cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Log.Info("Shutting down HTTP server...")
		err := srv.Shutdown(shutdownCtx)
		// Закрытие сокета завершает readPump, а он сохраняет партию
		return errors.Join(err, s.closeClients(shutdownCtx))
	})
	return g.Wait()
}

func (s *Server) track(c *Client) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.clients[c] = struct{}{}
	s.wg.Add(1)
}

func (s *Server) untrack(c *Client) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		s.wg.Done()
	}
}

// closeClients рвёт все подключения и ждёт, пока их readPump доработают
func (s *Server) closeClients(ctx context.Context) error {
	s.connMu.Lock()
	for c := range s.clients {
		_ = c.Conn.Close()
	}
	s.connMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for clients: %w", ctx.Err())
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

// acquire занимает единственное игровое место
func (s *Server) acquire(svc *engine.GameService) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return false
	}
	s.active = svc
	return true
}

func (s *Server) release(svc *engine.GameService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == svc {
		s.active = nil
	}
}

// withGame выполняет fn под замком сервера. Так отладочные ручки не читают мир посреди хода.
func (s *Server) withGame(fn func(svc *engine.GameService)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.active)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s, conn)
	s.track(client)
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("failed to write json response")
	}
}
