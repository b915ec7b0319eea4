package entity

// Session binds one engine to the presentation client that drives it.
type Session struct {
	ID   string `json:"id"`
	Game *Game  `json:"game"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Game: NewGame(),
	}
}
