package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("2024-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-03", Format(got))

	for _, bad := range []string{"", "2024", "2024-13", "03-2024", "2024-03-01"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "value %q", bad)
	}
}

func TestStart(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2024, time.July, 19, 14, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), Start(in))
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	date := time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC)

	got, err := Resolve("2024-02", &date, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", Format(got))

	got, err = Resolve("", &date, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-11", Format(got))

	got, err = Resolve("  ", nil, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", Format(got))

	_, err = Resolve("Nov", nil, now)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
