package entity

import "fmt"

// CellView is what a presentation layer needs to render one cell.
type CellView struct {
	Index    int    `json:"index"`
	Mark     Cell   `json:"mark"`
	Disabled bool   `json:"disabled"`
	Label    string `json:"label"`
}

// Snapshot is a read-only view of the engine after a call.
type Snapshot struct {
	Board      Board       `json:"board"`
	Cells      [9]CellView `json:"cells"`
	Turn       Cell        `json:"turn"`
	Status     StatusKind  `json:"status"`
	Winner     Cell        `json:"winner"`
	StatusText string      `json:"status_text"`
	GameOver   bool        `json:"game_over"`
}

func (that *Game) Snapshot() Snapshot {
	status := that.Status()

	snapshot := Snapshot{
		Board:      that.board,
		Turn:       that.turn,
		Status:     status.Kind,
		Winner:     status.Winner,
		StatusText: that.StatusText(),
		GameOver:   status.IsTerminal(),
	}

	for i, cell := range that.board {
		snapshot.Cells[i] = CellView{
			Index:    i,
			Mark:     cell,
			Disabled: cell != Empty || snapshot.GameOver,
			Label:    cellLabel(i, cell),
		}
	}

	return snapshot
}

// cellLabel numbers cells from 1 for screen readers.
func cellLabel(index int, cell Cell) string {
	if cell == Empty {
		return fmt.Sprintf("Cell %d", index+1)
	}

	return fmt.Sprintf("Cell %d, %s", index+1, cell)
}
