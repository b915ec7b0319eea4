package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

func (that *Server) handleConnect(ctx context.Context, c *conn, msg *Message) error {
	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return that.sendError(c, msg.Action, "malformed payload")
		}
	}

	session, err := that.service.GetOrStart(ctx, payloadReq.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get or start session: %w", err)
	}

	c.sessionID = session.ID

	that.logger.Info("client connected", "sessionID", session.ID)

	return that.sendGame(c, msg.Action, session, nil)
}

// startSession binds a fresh session to a client that skipped connect or
// whose session has expired. Moves and resets retry on it once.
func (that *Server) startSession(ctx context.Context, c *conn) error {
	session, err := that.service.GetOrStart(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if c.sessionID != "" {
		that.logger.Info("session expired, started a new one", "expiredID", c.sessionID, "sessionID", session.ID)
	}

	c.sessionID = session.ID

	return nil
}

func (that *Server) handleState(ctx context.Context, c *conn, msg *Message) error {
	session, err := that.service.GetOrStart(ctx, c.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.sessionID = session.ID

	return that.sendGame(c, msg.Action, session, nil)
}

func (that *Server) handleMove(ctx context.Context, c *conn, msg *Message) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Cell == nil {
		return that.sendError(c, msg.Action, "Cell is required")
	}

	session, accepted, err := that.service.ApplyMove(ctx, c.sessionID, *payloadReq.Cell)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		if err = that.startSession(ctx, c); err != nil {
			return err
		}

		session, accepted, err = that.service.ApplyMove(ctx, c.sessionID, *payloadReq.Cell)
	}

	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	return that.sendGame(c, msg.Action, session, &accepted)
}

func (that *Server) handleReset(ctx context.Context, c *conn, msg *Message) error {
	session, err := that.service.Reset(ctx, c.sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		if err = that.startSession(ctx, c); err != nil {
			return err
		}

		session, err = that.service.Reset(ctx, c.sessionID)
	}

	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return that.sendGame(c, msg.Action, session, nil)
}
