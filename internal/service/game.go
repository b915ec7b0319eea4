package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const lockStripes = 64

type GameService interface {
	Start(ctx context.Context) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	GetOrStart(ctx context.Context, id string) (*entity.Session, error)

	ApplyMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	End(ctx context.Context, id string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// locks serializes calls per session; an engine is driven by one caller at a time.
	locks [lockStripes]sync.Mutex
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) GameService {
	return &gameService{
		logger:   logger.With("component", "game_service"),
		gameRepo: gameRepo,
	}
}

func (that *gameService) Start(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString())

	if err := that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Debug("session started", "sessionID", session.ID)

	return session, nil
}

func (that *gameService) Get(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *gameService) GetOrStart(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return that.Start(ctx)
	}

	session, err := that.Get(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.Start(ctx)
	}

	if err != nil {
		return nil, err
	}

	return session, nil
}

func (that *gameService) ApplyMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error) {
	log := that.logger.With("method", "ApplyMove", "sessionID", id, "cell", cell)

	unlock := that.lock(id)
	defer unlock()

	session, err := that.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if !session.Game.ApplyMove(cell) {
		log.Debug("move ignored", "status", session.Game.StatusText())
		return session, false, nil
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed to update session: %w", err)
	}

	if status := session.Game.Status(); status.IsTerminal() {
		log.Info("game over", "status", status.String())
	}

	return session, true, nil
}

func (that *gameService) Reset(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Game.Reset()

	if err = that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	that.logger.Debug("game reset", "sessionID", id)

	return session, nil
}

func (that *gameService) End(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Debug("session ended", "sessionID", id)

	return nil
}

func (that *gameService) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	mu := &that.locks[h.Sum32()%lockStripes]
	mu.Lock()

	return mu.Unlock
}
