package monthkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "2025-03", Canonicalize("2025-3"))
	assert.Equal(t, "2025-03", Canonicalize("2025-03"))
	assert.Equal(t, "2025-03", Canonicalize("2025/3"))
	assert.Equal(t, "2025-03", Canonicalize(" 2025-03 "))
	assert.Equal(t, "2025-12", Canonicalize("2025/12"))

	// Unparseable input passes through after trim/slash normalization.
	assert.Equal(t, "not-a-month", Canonicalize("not-a-month"))
	assert.Equal(t, "25-03", Canonicalize("25/03"))
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, raw := range []string{"2025-3", "2025/03", "2024-12", "garbage", "2025-06-15"} {
		once := Canonicalize(raw)
		assert.Equal(t, once, Canonicalize(once), "input %q", raw)
	}
}

func TestBounds(t *testing.T) {
	from, to := Bounds("2025-06")
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestBoundsDecemberRollover(t *testing.T) {
	from, to := Bounds("2024-12")
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestBoundsMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "2025-13", "2025-00"} {
		from, to := Bounds(raw)
		assert.True(t, from.IsZero(), "input %q", raw)
		assert.True(t, to.IsZero(), "input %q", raw)
	}
}

func TestLastNYearRollover(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2025-01", "2024-12", "2024-11"}, LastN(now, 3))
}

func TestLastNMinimumOne(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2025-06"}, LastN(now, 0))
	assert.Equal(t, []string{"2025-06"}, LastN(now, -5))
}
