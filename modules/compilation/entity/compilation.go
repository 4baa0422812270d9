package entity

type Compilation struct {
	ID     int64  `db:"id"`
	Title  string `db:"title"`
	Pinned bool   `db:"pinned"`
}

// CompilationEvent is one row of the compilation to event link table.
type CompilationEvent struct {
	CompilationID int64 `db:"compilation_id"`
	EventID       int64 `db:"event_id"`
}
