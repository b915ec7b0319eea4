package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const writeWait = 10 * time.Second

type gameService interface {
	GetOrStart(ctx context.Context, id string) (*entity.Session, error)
	ApplyMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
}

// conn is the state of one client connection. It drives a single session.
type conn struct {
	ws        *websocket.Conn
	sessionID string
}

type handlerFunc func(ctx context.Context, c *conn, msg *Message) error

type Server struct {
	logger   *slog.Logger
	service  gameService
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, service gameService) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	server.handlers = map[string]handlerFunc{
		actionConnect: server.handleConnect,
		actionState:   server.handleState,
		actionMove:    server.handleMove,
		actionReset:   server.handleReset,
	}

	return server
}

// Register - mounts the websocket endpoint on the router.
func (that *Server) Register(router *mux.Router) {
	router.HandleFunc("/ws", that.ServeHTTP)
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer ws.Close()

	log.Info("WebSocket connection established", "remote", ws.RemoteAddr().String())

	if err = that.handleMessages(r.Context(), &conn{ws: ws}); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, c *conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := c.ws.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("connection closed", "sessionID", c.sessionID)
				return nil
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendError(c, "", "malformed message"); err != nil {
					return err
				}

				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendError(c, message.Action, apperror.ErrUnknownAction.Error()); err != nil {
				return err
			}

			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = that.sendError(c, message.Action, "failed to process message"); err != nil {
				return err
			}
		}
	}
}

func (that *Server) send(c *conn, action string, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = c.ws.WriteJSON(Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(c *conn, action, errorMsg string) error {
	if err := that.send(c, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *Server) sendGame(c *conn, action string, session *entity.Session, accepted *bool) error {
	snapshot := session.Game.Snapshot()

	return that.send(c, action, Payload{
		SessionID: session.ID,
		Game:      &snapshot,
		Accepted:  accepted,
	})
}
