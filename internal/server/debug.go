package server

import (
	"net/http"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine"
)

// DebugHandler даёт доступ к внутреннему состоянию активной партии
type DebugHandler struct {
	server *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{server: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/session", h.handleSession)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
}

type sessionSummary struct {
	Connected   bool              `json:"connected"`
	InMenu      bool              `json:"in_menu"`
	State       string            `json:"state,omitempty"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	EntityCount int               `json:"entity_count,omitempty"`
	Player      *domain.Entity    `json:"player,omitempty"`
	Log         []domain.LogEntry `json:"log,omitempty"`
}

// /debug/session - кто подключён и в каком состоянии партия.
// Ответ пишется под замком: сущности нельзя сериализовать посреди хода.
func (h *DebugHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	h.server.withGame(func(svc *engine.GameService) {
		var summary sessionSummary
		defer writeJSON(w, &summary)
		if svc == nil {
			return
		}
		summary.Connected = true
		summary.InMenu = svc.InMenu()
		session := svc.Session()
		if session == nil {
			return
		}
		summary.State = session.State()
		summary.Width = session.World.Map.Width
		summary.Height = session.World.Map.Height
		summary.EntityCount = session.World.Entities.Len()
		summary.Player = session.Player()
		summary.Log = session.World.Log.Entries()
	})
}

// /debug/entities - все сущности в порядке отрисовки, включая скрытые параметры AI
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	h.server.withGame(func(svc *engine.GameService) {
		if svc == nil || svc.Session() == nil {
			http.Error(w, "no active game", http.StatusNotFound)
			return
		}
		writeJSON(w, svc.Session().World.Entities.All())
	})
}
