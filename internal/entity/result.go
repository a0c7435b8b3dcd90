package entity

import "time"

const (
	WinnerWhite = "white"
	WinnerBlack = "black"
	WinnerDraw  = "draw"
)

// Result is the record of a finished match.
type Result struct {
	ID         string    `json:"id"`
	Winner     string    `json:"winner"`
	White      int       `json:"white"`
	Black      int       `json:"black"`
	Moves      int       `json:"moves"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Standings tallies finished matches by winner.
type Standings struct {
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
}

func (that *Standings) Total() int {
	return that.WhiteWins + that.BlackWins + that.Draws
}
