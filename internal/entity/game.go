package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

var (
	ErrInvalidCell  = errors.New("invalid cell mark")
	ErrInvalidTurn  = errors.New("invalid turn mark")
	ErrInvalidBoard = errors.New("board must have 9 cells")

	// WinCombos lists rows, then columns, then diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Cell is a single board position.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

func (that Cell) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Other returns the opposing mark. Empty has no opponent.
func (that Cell) Other() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = Empty
	case "X":
		*that = MarkX
	case "O":
		*that = MarkO
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCell, text)
	}

	return nil
}

// Board holds the cells in row-major order.
type Board [BoardSize]Cell

// Full reports whether no cell is empty.
func (that Board) Full() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Game is the engine for a single game in play. It is not safe for
// concurrent use; callers serialize access.
type Game struct {
	board Board
	turn  Cell
}

// NewGame - creates an engine with an empty board and X to move.
func NewGame() *Game {
	return &Game{turn: MarkX}
}

// ApplyMove places the current turn's mark on the cell at index and passes
// the turn. It reports whether the move was accepted. Moves on an
// out-of-range index, an occupied cell or a finished game are ignored.
func (that *Game) ApplyMove(index int) bool {
	if index < 0 || index >= BoardSize {
		return false
	}

	if that.board[index] != Empty || !that.Status().IsInProgress() {
		return false
	}

	that.board[index] = that.turn
	that.turn = that.turn.Other()

	return true
}

// Reset - starts the game over.
func (that *Game) Reset() {
	*that = Game{turn: MarkX}
}

func (that *Game) Status() Status {
	return EvaluateStatus(that.board)
}

func (that *Game) StatusText() string {
	status := that.Status()
	if status.IsInProgress() {
		return "Next player: " + that.turn.String()
	}

	return status.String()
}

// Board returns a copy of the current board.
func (that *Game) Board() Board {
	return that.board
}

func (that *Game) Turn() Cell {
	return that.turn
}

// CellDisabled reports whether a move on index would be ignored.
func (that *Game) CellDisabled(index int) bool {
	if index < 0 || index >= BoardSize {
		return true
	}

	return that.board[index] != Empty || !that.Status().IsInProgress()
}

type gameJSON struct {
	Board []Cell `json:"board"`
	Turn  Cell   `json:"turn"`
}

// MarshalJSON stores the board and the turn only; the status is derived.
func (that *Game) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(gameJSON{Board: that.board[:], Turn: that.turn})
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return data, nil
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var decoded gameJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("could not unmarshal game: %w", err)
	}

	if len(decoded.Board) != BoardSize {
		return fmt.Errorf("%w, got %d", ErrInvalidBoard, len(decoded.Board))
	}

	if decoded.Turn == Empty {
		return ErrInvalidTurn
	}

	copy(that.board[:], decoded.Board)
	that.turn = decoded.Turn

	return nil
}
