package player

import "time"

type EventType int

const (
	EventTypeProgress EventType = iota + 1
	EventTypeSeek
	EventTypeDone
	EventTypeError
)

type Event struct {
	Type     EventType
	Position time.Duration
	Frame    int
	Err      error
}
