package database

import (
	"fmt"
	"strings"
)

// Predicate renders one SQL condition. next returns the placeholder for the
// next bound argument.
type Predicate func(next func(arg any) string) string

// Eq is "column = $n".
func Eq(column string, value any) Predicate {
	return func(next func(any) string) string {
		return fmt.Sprintf("%s = %s", column, next(value))
	}
}

// AnyOf is "column = ANY($n)"; value is usually a pq.Array.
func AnyOf(column string, value any) Predicate {
	return func(next func(any) string) string {
		return fmt.Sprintf("%s = ANY(%s)", column, next(value))
	}
}

func Gte(column string, value any) Predicate {
	return func(next func(any) string) string {
		return fmt.Sprintf("%s >= %s", column, next(value))
	}
}

func Lt(column string, value any) Predicate {
	return func(next func(any) string) string {
		return fmt.Sprintf("%s < %s", column, next(value))
	}
}

func Lte(column string, value any) Predicate {
	return func(next func(any) string) string {
		return fmt.Sprintf("%s <= %s", column, next(value))
	}
}

// ILikeAny matches text as a case-insensitive substring of any of the
// columns. Wildcards in text match literally.
func ILikeAny(text string, columns ...string) Predicate {
	return func(next func(any) string) string {
		ph := next("%" + likeEscaper.Replace(text) + "%")
		parts := make([]string, len(columns))
		for i, col := range columns {
			parts[i] = fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, ph)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Raw is a condition without arguments.
func Raw(condition string) Predicate {
	return func(func(any) string) string {
		return condition
	}
}

// Where collects predicates and joins them with AND.
type Where struct {
	predicates []Predicate
}

func NewWhere() *Where {
	return &Where{}
}

func (w *Where) And(p Predicate) *Where {
	w.predicates = append(w.predicates, p)
	return w
}

func (w *Where) Len() int {
	return len(w.predicates)
}

// Build renders " WHERE a AND b" (or "" when empty) with placeholders
// numbered from startIndex, and returns the bound args.
func (w *Where) Build(startIndex int) (string, []any) {
	if len(w.predicates) == 0 {
		return "", nil
	}

	args := make([]any, 0, len(w.predicates))
	argIndex := startIndex
	next := func(arg any) string {
		args = append(args, arg)
		ph := fmt.Sprintf("$%d", argIndex)
		argIndex++
		return ph
	}

	conditions := make([]string, len(w.predicates))
	for i, p := range w.predicates {
		conditions[i] = p(next)
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// LimitOffset appends limit and offset to args and returns the matching clause.
func LimitOffset(args []any, limit, offset int) (string, []any) {
	n := len(args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), append(args, limit, offset)
}
