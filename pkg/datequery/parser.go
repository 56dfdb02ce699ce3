package datequery

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// relativeKeywords maps a keyword to its offset in days from "now".
var relativeKeywords = []struct {
	word   string
	offset int
}{
	{"today", 0},
	{"tomorrow", 1},
	{"yesterday", -1},
}

// monthNames holds full English month names and their common abbreviations.
// Several entries can resolve to the same month; prefix matching counts
// distinct months, not entries.
var monthNames = []struct {
	name  string
	month int
}{
	{"january", 1}, {"jan", 1},
	{"february", 2}, {"feb", 2},
	{"march", 3}, {"mar", 3},
	{"april", 4}, {"apr", 4},
	{"may", 5},
	{"june", 6}, {"jun", 6},
	{"july", 7}, {"jul", 7},
	{"august", 8}, {"aug", 8},
	{"september", 9}, {"sept", 9}, {"sep", 9},
	{"october", 10}, {"oct", 10},
	{"november", 11}, {"nov", 11},
	{"december", 12}, {"dec", 12},
}

var (
	isoPattern      = regexp.MustCompile(`^(\d{4})(?:[-/.](\d{1,2})(?:[-/.](\d{1,2}))?)?$`)
	dayMonthPattern = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
	dayPattern      = regexp.MustCompile(`^\d{1,2}$`)
)

// Parse interprets free text as a possibly partial date specification.
// Recognition rules are tried in order and the first success wins; text that
// fits no rule yields nil, which callers treat as "no date constraint", never
// as an error. The current date is taken from now so results are
// deterministic for the caller.
func Parse(text string, now time.Time) *DateQuery {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return nil
	}

	if q := parseRelativeKeyword(input, now); q != nil {
		return q
	}
	if q, matched := parseISOLike(input); matched {
		return q
	}
	if q := parseDayMonth(input, now); q != nil {
		return q
	}
	return parseMonthNameForm(input, now)
}

// parseRelativeKeyword resolves an unambiguous prefix of today, tomorrow, or
// yesterday. "t" prefixes two keywords and is rejected; "tod" resolves.
func parseRelativeKeyword(input string, now time.Time) *DateQuery {
	matched := 0
	offset := 0
	for _, keyword := range relativeKeywords {
		if strings.HasPrefix(keyword.word, input) {
			matched++
			offset = keyword.offset
		}
	}
	if matched != 1 {
		return nil
	}

	date := now.AddDate(0, 0, offset)
	return &DateQuery{Year: date.Year(), Month: int(date.Month()), Day: date.Day()}
}

// parseISOLike handles YYYY, YYYY-MM, and YYYY-MM-DD with -, /, or . as
// interchangeable separators. The second return value tells whether the
// input had this shape at all; a shaped input with an impossible month or
// day yields (nil, true) so that later rules do not reinterpret it.
func parseISOLike(input string) (*DateQuery, bool) {
	groups := isoPattern.FindStringSubmatch(input)
	if groups == nil {
		return nil, false
	}

	year, _ := strconv.Atoi(groups[1])
	if groups[2] == "" {
		return &DateQuery{Year: year}, true
	}

	month, _ := strconv.Atoi(groups[2])
	if month < 1 || month > 12 {
		return nil, true
	}
	if groups[3] == "" {
		return &DateQuery{Year: year, Month: month}, true
	}

	day, _ := strconv.Atoi(groups[3])
	if !isValidDate(year, month, day) {
		return nil, true
	}
	return &DateQuery{Year: year, Month: month, Day: day}, true
}

// parseDayMonth handles two small numbers without a year, assuming the
// current year. The pair is read as (month, day) first and as (day, month)
// when that fails.
func parseDayMonth(input string, now time.Time) *DateQuery {
	groups := dayMonthPattern.FindStringSubmatch(input)
	if groups == nil {
		return nil
	}

	first, _ := strconv.Atoi(groups[1])
	second, _ := strconv.Atoi(groups[2])
	year := now.Year()

	if isValidDate(year, first, second) {
		return &DateQuery{Year: year, Month: first, Day: second}
	}
	if isValidDate(year, second, first) {
		return &DateQuery{Year: year, Month: second, Day: first}
	}
	return nil
}

// parseMonthNameForm handles token forms containing a month name or an
// unambiguous prefix of one: "sep", "sep 2", "sep 2025", "2 sep",
// "september 2, 2025".
func parseMonthNameForm(input string, now time.Time) *DateQuery {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == '.' || r == '-'
	})

	switch len(tokens) {
	case 0:
		return nil
	case 1:
		month := resolveMonth(tokens[0])
		if month == 0 {
			return nil
		}
		return &DateQuery{Year: now.Year(), Month: month}
	case 2:
		return parseTwoTokens(tokens[0], tokens[1], now)
	default:
		return parseManyTokens(tokens, now)
	}
}

// parseTwoTokens tries "month day", then "month year", then "day month".
// The first interpretation that yields a valid date wins.
func parseTwoTokens(first, second string, now time.Time) *DateQuery {
	if month := resolveMonth(first); month != 0 {
		if dayPattern.MatchString(second) {
			day, _ := strconv.Atoi(second)
			if isValidDate(now.Year(), month, day) {
				return &DateQuery{Year: now.Year(), Month: month, Day: day}
			}
		}
		if yearPattern.MatchString(second) {
			year, _ := strconv.Atoi(second)
			return &DateQuery{Year: year, Month: month}
		}
		return nil
	}

	if dayPattern.MatchString(first) {
		if month := resolveMonth(second); month != 0 {
			day, _ := strconv.Atoi(first)
			if isValidDate(now.Year(), month, day) {
				return &DateQuery{Year: now.Year(), Month: month, Day: day}
			}
		}
	}
	return nil
}

// parseManyTokens scans the tokens once each for the first month name, the
// first 4-digit year, and the first 1-2 digit day. Month and day are
// required; the year defaults to the current one.
func parseManyTokens(tokens []string, now time.Time) *DateQuery {
	month := 0
	year := 0
	day := 0

	for _, token := range tokens {
		if month == 0 {
			if m := resolveMonth(token); m != 0 {
				month = m
				continue
			}
		}
		if year == 0 && yearPattern.MatchString(token) {
			year, _ = strconv.Atoi(token)
			continue
		}
		if day == 0 && dayPattern.MatchString(token) {
			day, _ = strconv.Atoi(token)
		}
	}

	if month == 0 || day == 0 {
		return nil
	}
	if year == 0 {
		year = now.Year()
	}
	if !isValidDate(year, month, day) {
		return nil
	}
	return &DateQuery{Year: year, Month: month, Day: day}
}

// resolveMonth returns the month number for a token that is a prefix of
// exactly one month. Prefixes matching several distinct months ("ju", "ma")
// do not resolve; multiple entries of the same month ("sep", "sept",
// "september") count as one.
func resolveMonth(token string) int {
	if token == "" || token[0] >= '0' && token[0] <= '9' {
		return 0
	}

	resolved := 0
	for _, entry := range monthNames {
		if strings.HasPrefix(entry.name, token) {
			if resolved != 0 && resolved != entry.month {
				return 0
			}
			resolved = entry.month
		}
	}
	return resolved
}

// isValidDate reports whether the triple denotes a real calendar date, using
// a construct-and-read-back round trip to catch overflow like Feb 30.
func isValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Year() == year && int(date.Month()) == month && date.Day() == day
}
