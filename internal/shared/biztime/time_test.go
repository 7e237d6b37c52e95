package biztime

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	MustInit("Asia/Kolkata")
	os.Exit(m.Run())
}

func TestDateOf(t *testing.T) {
	// 20:00 UTC on Jan 1 is 01:30 IST on Jan 2.
	late := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	day := DateOf(late)
	assert.Equal(t, 2024, day.Year())
	assert.Equal(t, time.January, day.Month())
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, 0, day.Hour())

	// 06:00 UTC on Jan 1 is 11:30 IST, still Jan 1.
	morning := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DateOf(morning).Day())
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))

	// 20:00 UTC crosses midnight in IST.
	c := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.False(t, SameDate(a, c))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestParseDateInBizTimezone(t *testing.T) {
	parsed, err := ParseDateInBizTimezone("2024-06-15")
	require.NoError(t, err)

	// Midnight IST is 18:30 UTC the previous day.
	assert.Equal(t, time.UTC, parsed.Location())
	assert.Equal(t, 14, parsed.Day())
	assert.Equal(t, 18, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())

	_, err = ParseDateInBizTimezone("15/06/2024")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	// 20:00 UTC on Jan 1 formats as the IST date, Jan 2.
	late := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", FormatDate(late))
}

func TestMonthDay_RoundTrip(t *testing.T) {
	day := MonthDay(2024, time.February, 29)
	assert.Equal(t, "2024-02-29", FormatDate(day))
	assert.Equal(t, day, DateOf(day))
}
