package entity

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCanceled  Status = "CANCELED"
)

// Request is a user's participation request for an event.
type Request struct {
	ID          int64     `db:"id"`
	RequesterID int64     `db:"requester_id"`
	EventID     int64     `db:"event_id"`
	Status      Status    `db:"status"`
	Created     time.Time `db:"created"`
}
