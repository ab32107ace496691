package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/version"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg   engine.Config
	saves SaveStore
	hub   *Hub
	log   logrus.FieldLogger

	// ctx живёт до остановки сервера; от него считаются контексты сессий.
	ctx    context.Context
	cancel context.CancelFunc
}

// New собирает сервер. saves может быть nil — тогда SAVE/LOAD отклоняются.
func New(cfg engine.Config, saves SaveStore, log logrus.FieldLogger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:    cfg,
		saves:  saves,
		hub:    NewHub(),
		log:    log.WithField("component", "server"),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler - все роуты сервера; используется и Run, и тестами.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.hub)
	debugHandler.RegisterRoutes(mux)
	return mux
}

// Run слушает addr до отмены ctx, затем закрывает сессии и ждёт
// завершения запросов.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("Dungeon server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.cancel()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	s.log.WithField("sessions", s.hub.Count()).Info("Shutting down")
	s.cancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// Close отменяет контекст всех сессий.
func (s *Server) Close() { s.cancel() }

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket. Пока соединение открыто,
// хендлер сам крутит цикл чтения.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("Upgrade error")
		return
	}

	session := NewSession(s.cfg, s.saves, s.log)
	s.hub.Register(session)
	client := NewClient(session, conn, s.log)
	s.log.WithFields(logrus.Fields{
		"session": session.ID(),
		"remote":  r.RemoteAddr,
	}).Info("Client connected")

	go client.writePump()
	client.readPump(s.ctx, s.hub)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
