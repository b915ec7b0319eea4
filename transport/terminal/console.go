package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const help = "Enter 1-9 to mark a cell, r to restart, q to quit."

type gameService interface {
	Start(ctx context.Context) (*entity.Session, error)
	ApplyMove(ctx context.Context, id string, cell int) (*entity.Session, bool, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	End(ctx context.Context, id string) error
}

// Console lets two players share one keyboard.
type Console struct {
	logger  *slog.Logger
	service gameService

	in  io.Reader
	out *termenv.Output
}

func NewConsole(logger *slog.Logger, service gameService, in io.Reader, out *termenv.Output) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		service: service,
		in:      in,
		out:     out,
	}
}

// Run - plays until the input ends, q is entered or ctx is done. Waiting
// for input does not delay cancellation.
func (that *Console) Run(ctx context.Context) error {
	session, err := that.service.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	defer func() {
		if err := that.service.End(context.WithoutCancel(ctx), session.ID); err != nil {
			that.logger.Error("failed to end session", "sessionID", session.ID, "error", err)
		}
	}()

	that.println(help)
	that.render(session.Game)

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)

	go that.read(done, lines, readErr)

	for {
		var line string

		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-lines:
			if !ok {
				if err = <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			line = next
		}

		input := strings.ToLower(strings.TrimSpace(line))

		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "r", "restart":
			if session, err = that.service.Reset(ctx, session.ID); err != nil {
				return fmt.Errorf("failed to restart game: %w", err)
			}
		default:
			cell, convErr := strconv.Atoi(input)
			if convErr != nil {
				that.println(that.out.String(help).Faint().String())
				continue
			}

			var accepted bool
			if session, accepted, err = that.service.ApplyMove(ctx, session.ID, cell-1); err != nil {
				return fmt.Errorf("failed to make move: %w", err)
			}

			if !accepted {
				that.println(that.out.String("That cell is not available.").Foreground(termenv.ANSIYellow).String())
				continue
			}
		}

		that.render(session.Game)
	}
}

// read feeds input lines to Run until the input ends or done is closed.
// A blocked Read is not interrupted; the goroutine exits on the next line.
func (that *Console) read(done <-chan struct{}, lines chan<- string, readErr chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}

	readErr <- scanner.Err()
}

func (that *Console) render(game *entity.Game) {
	board := game.Board()

	var sb strings.Builder
	sb.WriteString("\n")

	for row := range 3 {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := range 3 {
			if col > 0 {
				sb.WriteString("|")
			}

			index := row*3 + col
			sb.WriteString(" " + that.cell(index, board[index]) + " ")
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(that.out.String(game.StatusText()).Bold().String())
	sb.WriteString("\n")

	that.print(sb.String())
}

// cell shows empty cells by their number so players know what to type.
func (that *Console) cell(index int, cell entity.Cell) string {
	switch cell {
	case entity.MarkX:
		return that.out.String("X").Foreground(termenv.ANSIBrightRed).Bold().String()
	case entity.MarkO:
		return that.out.String("O").Foreground(termenv.ANSIBrightBlue).Bold().String()
	default:
		return that.out.String(strconv.Itoa(index + 1)).Faint().String()
	}
}

func (that *Console) println(s string) {
	that.print(s + "\n")
}

func (that *Console) print(s string) {
	if _, err := io.WriteString(that.out, s); err != nil {
		that.logger.Warn("failed to write output", "error", err)
	}
}
