package models

// Turn is one unit of upstream response content.
type Turn struct {
	Audio        []byte
	Text         string
	TurnComplete bool
}
