package models

import "time"

// ChatMessage is the subset of a channel message the history reader needs.
type ChatMessage struct {
	ID        string
	Content   string
	Timestamp time.Time
}
