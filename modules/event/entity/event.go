package entity

import "time"

type State string

const (
	StatePending   State = "PENDING"
	StatePublished State = "PUBLISHED"
	StateCanceled  State = "CANCELED"
)

func ParseState(s string) (State, bool) {
	switch State(s) {
	case StatePending, StatePublished, StateCanceled:
		return State(s), true
	}
	return "", false
}

// Event is a row of events joined with its category, initiator and location.
type Event struct {
	ID                int64      `db:"id"`
	Title             string     `db:"title"`
	Annotation        string     `db:"annotation"`
	Description       string     `db:"description"`
	CategoryID        int64      `db:"category_id"`
	CategoryName      string     `db:"category_name"`
	LocationID        int64      `db:"location_id"`
	Lat               float64    `db:"lat"`
	Lon               float64    `db:"lon"`
	InitiatorID       int64      `db:"initiator_id"`
	InitiatorName     string     `db:"initiator_name"`
	State             State      `db:"state"`
	EventDate         time.Time  `db:"event_date"`
	CreatedOn         time.Time  `db:"created_on"`
	PublishedOn       *time.Time `db:"published_on"`
	Paid              bool       `db:"paid"`
	ParticipantLimit  int        `db:"participant_limit"`
	RequestModeration bool       `db:"request_moderation"`
}

type Location struct {
	ID  int64   `db:"id"`
	Lat float64 `db:"lat"`
	Lon float64 `db:"lon"`
}

// PublicFilter selects published events in [RangeStart, RangeEnd).
type PublicFilter struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    time.Time
	RangeEnd      time.Time
	OnlyAvailable bool
}

type AdminFilter struct {
	Users      []int64
	States     []State
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
}
