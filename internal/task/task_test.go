package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tk := New(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), PriorityHigh, []string{"  Buy milk ", "", "and bread"})
	assert.Equal(t, "2024-01-01T09:00 H\nBuy milk\nand bread\n", Encode(tk))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tk, err := Decode("2023-05-01T09:00 C\nShip release\nNotify team\n")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC), tk.Timestamp)
	assert.Equal(t, PriorityCritical, tk.Priority)
	assert.Equal(t, []string{"Ship release", "Notify team"}, tk.Body)
}

func TestDecodeKeepsSeconds(t *testing.T) {
	t.Parallel()

	raw := "2023-05-01T09:00:30 L\nWater plants\n"
	tk, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, Encode(tk))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":         "",
		"no priority":   "2023-05-01T09:00\nbody\n",
		"bad timestamp": "2023-13-01T09:00 H\nbody\n",
		"bad priority":  "2023-05-01T09:00 X\nbody\n",
		"blank body":    "2023-05-01T09:00 H\n\n",
		"extra header":  "2023-05-01T09:00 H extra\nbody\n",
		"lower case":    "2023-05-01T09:00 h\nbody\n",
		"indented body": "2023-05-01T09:00 H\n  body\n",
		"no newline":    "2023-05-01T09:00 H\nbody",
		"zero seconds":  "2023-05-01T09:00:00 H\nbody\n",
		"inner blank":   "2023-05-01T09:00 H\nfirst\n\nsecond\n",
		"double space":  "2023-05-01T09:00  H\nbody\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"c", "H", " n ", "L"} {
		_, err := ParsePriority(in)
		assert.NoError(t, err, in)
	}
	for _, in := range []string{"", "X", "CH", "high"} {
		_, err := ParsePriority(in)
		assert.Error(t, err, in)
	}
	assert.Equal(t, "High", PriorityHigh.Name())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-2-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, in := range []string{"2023-02-29", "2023-13-01", "2023-00-10", "2023-04-31", "2023/01/01", "abc", "2023-01", "2023-01-01-01"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	h, m, err := ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 5, m)

	for _, in := range []string{"24:00", "12:60", "-1:00", "12", "12:00:00", "ab:cd"} {
		_, _, err := ParseClock(in)
		assert.ErrorIs(t, err, ErrInvalidTime, in)
	}
}

func TestWithDateAndClockKeepOtherComponent(t *testing.T) {
	t.Parallel()

	ts := time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2023, 5, 1, 10, 15, 0, 0, time.UTC), WithClock(ts, 10, 15))

	date, err := ParseDate("2024-12-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 24, 9, 0, 0, 0, time.UTC), WithDate(ts, date))
}

func TestDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	at := func(y int, m time.Month, d, h int) Task {
		return New(time.Date(y, m, d, h, 0, 0, 0, time.UTC), PriorityNormal, []string{"x"})
	}

	assert.Equal(t, DueToday, at(2024, 3, 10, 0).Due(now, nil))
	assert.Equal(t, DueToday, at(2024, 3, 10, 23).Due(now, time.UTC))
	assert.Equal(t, DueIncoming, at(2024, 3, 11, 0).Due(now, nil))
	assert.Equal(t, DueIncoming, at(2025, 1, 1, 0).Due(now, nil))
	assert.Equal(t, DueOverdue, at(2024, 3, 9, 23).Due(now, nil))

	tokyo := time.FixedZone("UTC+9", 9*3600)
	assert.Equal(t, DueToday, at(2024, 3, 11, 8).Due(now, tokyo))

	assert.Equal(t, "I", DueIncoming.Code())
	assert.Equal(t, "Overdue", DueOverdue.String())
}
