package entity

// StatusKind classifies a board.
type StatusKind string

const (
	StatusInProgress StatusKind = "in_progress"
	StatusWon        StatusKind = "won"
	StatusDraw       StatusKind = "draw"
)

// Status is derived from a board on demand and never stored.
type Status struct {
	Kind   StatusKind
	Winner Cell
}

func (that Status) IsInProgress() bool {
	return that.Kind == StatusInProgress
}

func (that Status) IsTerminal() bool {
	return that.Kind == StatusWon || that.Kind == StatusDraw
}

// String renders the terminal states; an in-progress status needs the turn,
// see Game.StatusText.
func (that Status) String() string {
	switch that.Kind {
	case StatusWon:
		return "Winner: " + that.Winner.String()
	case StatusDraw:
		return "Draw!"
	default:
		return "In progress"
	}
}

// EvaluateStatus - determines the status of a board. The first completed
// combo in WinCombos order wins; a full board without one is a draw.
func EvaluateStatus(board Board) Status {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return Status{Kind: StatusWon, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if board.Full() {
		return Status{Kind: StatusDraw}
	}

	return Status{Kind: StatusInProgress}
}
