package monitor

import "time"

type Status struct {
	Store       bool      `json:"store"`
	Journal     bool      `json:"journal"`
	JournalSize int       `json:"journal_size"`
	Subscribers int       `json:"subscribers"`
	LastCheck   time.Time `json:"last_check"`
}
