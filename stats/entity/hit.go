package entity

import "time"

type Hit struct {
	ID      int64     `db:"id"`
	App     string    `db:"app"`
	URI     string    `db:"uri"`
	IP      string    `db:"ip"`
	Created time.Time `db:"created"`
}

type ViewStat struct {
	App  string `db:"app"`
	URI  string `db:"uri"`
	Hits int64  `db:"hits"`
}

// StatsFilter selects hits in [Start, End], optionally only for URIs.
type StatsFilter struct {
	Start  time.Time
	End    time.Time
	URIs   []string
	Unique bool
}
