package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime_JSON(t *testing.T) {
	in := NewDateTime(time.Date(2024, 3, 9, 18, 30, 5, 0, time.Local))

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09 18:30:05"`, string(raw))

	var out DateTime
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, in.Equal(out.Time))
}

func TestDateTime_NullAndZero(t *testing.T) {
	raw, err := json.Marshal(DateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	var d DateTime
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())
}

func TestDateTime_RejectsOtherLayouts(t *testing.T) {
	var d DateTime
	err := json.Unmarshal([]byte(`"2024-03-09T18:30:05Z"`), &d)

	assert.Error(t, err)
}

func TestNow_TruncatedToSeconds(t *testing.T) {
	assert.Zero(t, Now().Nanosecond())
}

func TestDateTimePtr(t *testing.T) {
	assert.Nil(t, DateTimePtr(nil))

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	require.NotNil(t, DateTimePtr(&ts))
	assert.Equal(t, "2024-01-01 00:00:00", DateTimePtr(&ts).String())
}
