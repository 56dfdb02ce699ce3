package datequery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.September, 29, 14, 30, 0, 0, time.UTC)

func TestParse_RelativeKeywords(t *testing.T) {
	testCases := []struct {
		input string
		want  *DateQuery
	}{
		{"today", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"tod", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"Today", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"tomorrow", &DateQuery{Year: 2025, Month: 9, Day: 30}},
		{"tom", &DateQuery{Year: 2025, Month: 9, Day: 30}},
		{"yesterday", &DateQuery{Year: 2025, Month: 9, Day: 28}},
		{"y", &DateQuery{Year: 2025, Month: 9, Day: 28}},
		// "t" prefixes both today and tomorrow, so it must not resolve.
		{"t", nil},
		{"to", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.input, now))
		})
	}
}

func TestParse_RelativeKeywordCrossesMonthBoundary(t *testing.T) {
	endOfMonth := time.Date(2025, time.September, 30, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, &DateQuery{Year: 2025, Month: 10, Day: 1}, Parse("tomorrow", endOfMonth))
}

func TestParse_ISOLike(t *testing.T) {
	testCases := []struct {
		input string
		want  *DateQuery
	}{
		{"2025", &DateQuery{Year: 2025}},
		{"2025-09", &DateQuery{Year: 2025, Month: 9}},
		{"2025/09", &DateQuery{Year: 2025, Month: 9}},
		{"2025.9", &DateQuery{Year: 2025, Month: 9}},
		{"2025-09-02", &DateQuery{Year: 2025, Month: 9, Day: 2}},
		{"2025/09/02", &DateQuery{Year: 2025, Month: 9, Day: 2}},
		{"2025-9-2", &DateQuery{Year: 2025, Month: 9, Day: 2}},
		{"2024-02-29", &DateQuery{Year: 2024, Month: 2, Day: 29}},
		// Impossible dates must yield no match, not a partial one.
		{"2025-02-30", nil},
		{"2025-02-29", nil},
		{"2025-13", nil},
		{"2025-00-10", nil},
		{"2025-04-31", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.input, now))
		})
	}
}

func TestParse_DayMonthWithoutYear(t *testing.T) {
	testCases := []struct {
		input string
		want  *DateQuery
	}{
		// (month, day) is tried first.
		{"9/29", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"9-29", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"9.29", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"2/9", &DateQuery{Year: 2025, Month: 2, Day: 9}},
		// 29 is no month, so (day, month) applies.
		{"29/9", &DateQuery{Year: 2025, Month: 9, Day: 29}},
		{"31/1", &DateQuery{Year: 2025, Month: 1, Day: 31}},
		// Neither reading is a real date.
		{"31/31", nil},
		{"0/0", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.input, now))
		})
	}
}

func TestParse_MonthNameForms(t *testing.T) {
	testCases := []struct {
		input string
		want  *DateQuery
	}{
		{"sep", &DateQuery{Year: 2025, Month: 9}},
		{"sept", &DateQuery{Year: 2025, Month: 9}},
		{"september", &DateQuery{Year: 2025, Month: 9}},
		{"SEPTEMBER", &DateQuery{Year: 2025, Month: 9}},
		{"d", &DateQuery{Year: 2025, Month: 12}},
		{"o", &DateQuery{Year: 2025, Month: 10}},
		// "ju" matches June and July, "ma" matches March and May.
		{"ju", nil},
		{"ma", nil},
		{"may", &DateQuery{Year: 2025, Month: 5}},
		{"mar", &DateQuery{Year: 2025, Month: 3}},

		{"sep 2", &DateQuery{Year: 2025, Month: 9, Day: 2}},
		{"sep 2025", &DateQuery{Year: 2025, Month: 9}},
		{"dec 2024", &DateQuery{Year: 2024, Month: 12}},
		{"2 sep", &DateQuery{Year: 2025, Month: 9, Day: 2}},
		{"31 jan", &DateQuery{Year: 2025, Month: 1, Day: 31}},
		// Feb 30 is not a date in any reading.
		{"feb 30", nil},
		{"30 feb", nil},

		{"september 2, 2025", &DateQuery{Year: 2025, Month: 9, Day: 2}},
		{"2 sep 2024", &DateQuery{Year: 2024, Month: 9, Day: 2}},
		{"sep 2024 2", &DateQuery{Year: 2024, Month: 9, Day: 2}},
		// Extra words are skipped as long as month and day are found.
		{"on 2 sep 2025", &DateQuery{Year: 2025, Month: 9, Day: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Parse(tc.input, now))
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"groceries",
		"next tuesday",
		"meeting notes",
		"12345",
		"13/13/13",
		"sep sep",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Nil(t, Parse(input, now))
		})
	}
}

func TestDateQuery_Matches(t *testing.T) {
	target := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateQuery{Year: 2025, Month: 9, Day: 2}.Matches(target))
	assert.True(t, DateQuery{Year: 2025, Month: 9}.Matches(target))
	assert.True(t, DateQuery{Month: 9}.Matches(target))
	assert.True(t, DateQuery{Year: 2025}.Matches(target))
	assert.True(t, DateQuery{}.Matches(target))

	assert.False(t, DateQuery{Year: 2024, Month: 9, Day: 2}.Matches(target))
	assert.False(t, DateQuery{Year: 2025, Month: 10}.Matches(target))
	assert.False(t, DateQuery{Year: 2025, Month: 9, Day: 3}.Matches(target))
	assert.False(t, DateQuery{Day: 3}.Matches(target))
}

func TestParse_MonthOnlyUsesInjectedYear(t *testing.T) {
	other := time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, &DateQuery{Year: 2031, Month: 9}, Parse("sep", other))
}
