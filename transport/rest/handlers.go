package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// SessionCookie carries the session id between requests.
const SessionCookie = "game_session"

type Handlers interface {
	Ping(w http.ResponseWriter, _ *http.Request)

	GetGame(w http.ResponseWriter, r *http.Request)
	ApplyMove(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	EndGame(w http.ResponseWriter, r *http.Request)
}

type gameService interface {
	GetOrStart(ctx context.Context, id string) (*entity.Session, error)
	ApplyMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	End(ctx context.Context, id string) error
}

// GameResponse is the body of every game route.
type GameResponse struct {
	SessionID string          `json:"session_id"`
	Game      entity.Snapshot `json:"game"`
	Accepted  *bool           `json:"accepted,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger     *slog.Logger
	service    gameService
	sessionTTL time.Duration
}

func NewHandlers(logger *slog.Logger, service gameService, sessionTTL time.Duration) Handlers {
	return &handlers{
		logger:     logger.With("component", "rest"),
		service:    service,
		sessionTTL: sessionTTL,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.service.GetOrStart(r.Context(), sessionID(r))
	if err != nil {
		that.fail(w, "GetGame", err)
		return
	}

	that.setSessionCookie(w, session.ID)
	that.writeJSON(w, http.StatusOK, GameResponse{SessionID: session.ID, Game: session.Game.Snapshot()})
}

func (that *handlers) ApplyMove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidCell.Error()})
		return
	}

	session, err := that.service.GetOrStart(r.Context(), sessionID(r))
	if err != nil {
		that.fail(w, "ApplyMove", err)
		return
	}

	session, accepted, err := that.service.ApplyMove(r.Context(), session.ID, index)
	if err != nil {
		that.fail(w, "ApplyMove", err)
		return
	}

	that.setSessionCookie(w, session.ID)
	that.writeJSON(w, http.StatusOK, GameResponse{SessionID: session.ID, Game: session.Game.Snapshot(), Accepted: &accepted})
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := that.service.GetOrStart(r.Context(), sessionID(r))
	if err != nil {
		that.fail(w, "Reset", err)
		return
	}

	session, err = that.service.Reset(r.Context(), session.ID)
	if err != nil {
		that.fail(w, "Reset", err)
		return
	}

	that.setSessionCookie(w, session.ID)
	that.writeJSON(w, http.StatusOK, GameResponse{SessionID: session.ID, Game: session.Game.Snapshot()})
}

func (that *handlers) EndGame(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id != "" {
		if err := that.service.End(r.Context(), id); err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
			that.fail(w, "EndGame", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (that *handlers) setSessionCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if that.sessionTTL > 0 {
		cookie.Expires = time.Now().Add(that.sessionTTL)
	}

	http.SetCookie(w, cookie)
}

func (that *handlers) fail(w http.ResponseWriter, method string, err error) {
	that.logger.Error("request failed", "method", method, "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
