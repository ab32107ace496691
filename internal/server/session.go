package server

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/internal/engine/handlers"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/pkg/api"
)

// SaveStore - хранилище партий (storage.Manager).
type SaveStore interface {
	Save(ctx context.Context, st storage.State, slot int) error
	Load(ctx context.Context, slot int) (*storage.LoadResult, error)
}

// SessionInfo - сводка сессии для /debug/sessions.
type SessionInfo struct {
	ID       string    `json:"id"`
	RunID    string    `json:"run_id,omitempty"`
	Turn     int       `json:"turn"`
	Depth    int       `json:"depth"`
	GameOver bool      `json:"game_over"`
	Commands int       `json:"commands"`
	Started  time.Time `json:"started"`
}

// Session - одна партия одного подключения. Handle вызывается только из
// горутины чтения клиента, поэтому мир партии трогает ровно одна горутина.
type Session struct {
	id    string
	cfg   engine.Config
	saves SaveStore
	game  *engine.Game
	log   logrus.FieldLogger

	mu   sync.Mutex
	info SessionInfo
}

// NewSession - сессия без партии; партию создаёт INIT или LOAD.
// saves может быть nil: тогда SAVE и LOAD отклоняются.
func NewSession(cfg engine.Config, saves SaveStore, log logrus.FieldLogger) *Session {
	id := uuid.NewString()
	return &Session{
		id:    id,
		cfg:   cfg,
		saves: saves,
		log:   log.WithField("session", id),
		info:  SessionInfo{ID: id, Started: time.Now()},
	}
}

func (s *Session) ID() string { return s.id }

// Game - текущая партия или nil до INIT.
func (s *Session) Game() *engine.Game { return s.game }

// Info - копия сводки; безопасна из любой горутины.
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Handle выполняет одну команду клиента и возвращает ответ.
// Ошибки не возвращаются: они превращаются в ответ ERROR.
func (s *Session) Handle(ctx context.Context, cmd api.ClientCommand) api.ServerResponse {
	var resp api.ServerResponse
	switch strings.ToUpper(cmd.Action) {
	case api.ActionInit:
		resp = s.handleInit(cmd.Payload)
	case api.ActionSave:
		resp = s.handleSave(ctx, cmd.Payload)
	case api.ActionLoad:
		resp = s.handleLoad(ctx, cmd.Payload)
	default:
		resp = s.handleIntent(ctx, cmd)
	}
	s.touch()
	return resp
}

func (s *Session) handleInit(raw json.RawMessage) api.ServerResponse {
	p, err := decodePayload[api.InitPayload](raw)
	if err != nil {
		return fail(err)
	}
	cfg := s.cfg
	if p.Seed != 0 {
		cfg.Seed = p.Seed
	}
	g, err := engine.NewGame(cfg, s.log)
	if err != nil {
		s.log.WithError(err).Error("Failed to start game")
		return fail(err)
	}
	s.attach(g)
	return buildResponse(api.ResponseInit, g.Snapshot(), g.World().Messages.All())
}

func (s *Session) handleSave(ctx context.Context, raw json.RawMessage) api.ServerResponse {
	if s.game == nil {
		return fail(errors.FailedPrecondition("no game to save"))
	}
	if s.saves == nil {
		return fail(errors.FailedPrecondition("saving is disabled"))
	}
	p, err := decodePayload[api.SavePayload](raw)
	if err != nil {
		return fail(err)
	}
	if err := s.saves.Save(ctx, s.game.State(), p.Slot); err != nil {
		return fail(err)
	}
	return api.ServerResponse{
		Type:  api.ResponseSaved,
		Tick:  s.game.Turn(),
		Depth: s.game.Depth(),
	}
}

func (s *Session) handleLoad(ctx context.Context, raw json.RawMessage) api.ServerResponse {
	if s.saves == nil {
		return fail(errors.FailedPrecondition("loading is disabled"))
	}
	p, err := decodePayload[api.SavePayload](raw)
	if err != nil {
		return fail(err)
	}
	res, err := s.saves.Load(ctx, p.Slot)
	if err != nil {
		return fail(err)
	}
	g, err := engine.Resume(s.cfg, res.State, s.log)
	if err != nil {
		return fail(err)
	}
	s.attach(g)
	resp := buildResponse(api.ResponseLoaded, g.Snapshot(), g.World().Messages.All())
	resp.Recovered = res.RecoveredFromBackup
	return resp
}

func (s *Session) handleIntent(ctx context.Context, cmd api.ClientCommand) api.ServerResponse {
	if s.game == nil {
		return fail(errors.FailedPrecondition("send INIT or LOAD first"))
	}
	intent, err := handlers.Decode(cmd)
	if err != nil {
		return fail(err)
	}
	res, err := s.game.Tick(ctx, intent)
	if err != nil {
		return errorResponse(err, errors.GetCode(err).String(), append(res.Messages, res.Warnings...))
	}
	if res.SaveErr != nil {
		s.log.WithError(res.SaveErr).Warn("Auto-save failed, game continues")
	}
	return buildResponse(api.ResponseUpdate, s.game.Snapshot(), res.Messages)
}

func (s *Session) attach(g *engine.Game) {
	s.game = g
	if s.saves != nil {
		g.SetSaver(s.saves)
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info.Commands++
	if s.game != nil {
		s.info.RunID = s.game.RunID()
		s.info.Turn = s.game.Turn()
		s.info.Depth = s.game.Depth()
		s.info.GameOver = s.game.GameOver()
	}
}

func fail(err error) api.ServerResponse {
	return errorResponse(err, errors.GetCode(err).String(), nil)
}

// decodePayload разбирает и проверяет служебный payload. Пустой payload даёт
// нулевое значение.
func decodePayload[T any](raw json.RawMessage) (T, error) {
	var p T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p); err != nil {
			return p, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid payload format")
		}
	}
	if v, ok := any(p).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return p, errors.WrapWithCode(err, errors.CodeInvalidArgument, "validation failed")
		}
	}
	return p, nil
}
