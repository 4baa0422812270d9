package utils

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/constants"
)

// DateTime is a time.Time that travels as "yyyy-MM-dd HH:mm:ss" in local time.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(constants.DateTimeLayout, strings.TrimSpace(s), time.Local)
}

func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(constants.DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + FormatDateTime(d.Time) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		return nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected format %s", s, constants.DateTimeLayout)
	}
	d.Time = t
	return nil
}

func (d DateTime) String() string {
	return FormatDateTime(d.Time)
}

// Now is truncated to seconds, the resolution of the wire format.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// DateTimePtr converts a nullable column to a wire value.
func DateTimePtr(t *time.Time) *DateTime {
	if t == nil {
		return nil
	}
	return &DateTime{Time: *t}
}
