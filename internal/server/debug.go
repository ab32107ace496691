package server

import (
	"net/http"
)

// DebugHandler предоставляет доступ к сводкам активных сессий
type DebugHandler struct {
	hub *Hub
}

func NewDebugHandler(hub *Hub) *DebugHandler {
	return &DebugHandler{hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/sessions/{id}", h.handleSession)
}

// /debug/sessions - список сессий с ходом и глубиной
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	allowDebugCORS(w)
	writeJSON(w, h.hub.Sessions())
}

// /debug/sessions/{id} - одна сессия
func (h *DebugHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	allowDebugCORS(w)
	id := r.PathValue("id")
	for _, info := range h.hub.Sessions() {
		if info.ID == id {
			writeJSON(w, info)
			return
		}
	}
	http.Error(w, "session not found", http.StatusNotFound)
}

// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
func allowDebugCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
