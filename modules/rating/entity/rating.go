package entity

import "time"

const (
	Like    = 1
	Dislike = -1
)

// Rating is one user's vote on one event.
type Rating struct {
	ID      int64     `db:"id"`
	UserID  int64     `db:"user_id"`
	EventID int64     `db:"event_id"`
	Value   int       `db:"value"`
	Created time.Time `db:"created"`
}

func ValueOf(isLike bool) int {
	if isLike {
		return Like
	}
	return Dislike
}
