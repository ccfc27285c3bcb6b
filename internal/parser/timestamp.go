package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(hour|day|week|month|quarter|year)$`)

// shortAgoRegex matches compact look-backs such as "3d" or "12h".
var shortAgoRegex = regexp.MustCompile(`(?i)^(\d+)\s*(m|h|d|w)$`)

// ParseSince parses the start of a --since window relative to now.
// It accepts "today", "yesterday", periods ("this week"), compact
// look-backs ("3d") and anything go-dateparser understands ("2 hours ago",
// "last friday", "2026-01-31").
func ParseSince(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)

	switch lower {
	case "":
		return time.Time{}, NewSinceError(input)
	case "now":
		return now, nil
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), nil
	}

	if match := periodRegex.FindStringSubmatch(input); match != nil {
		return parsePeriod(match[1], match[2], now), nil
	}

	if match := shortAgoRegex.FindStringSubmatch(input); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return time.Time{}, NewSinceError(input)
		}
		switch strings.ToLower(match[2]) {
		case "m":
			return now.Add(-time.Duration(n) * time.Minute), nil
		case "h":
			return now.Add(-time.Duration(n) * time.Hour), nil
		case "d":
			return now.AddDate(0, 0, -n), nil
		case "w":
			return now.AddDate(0, 0, -7*n), nil
		}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, NewSinceError(input)
	}
	return result.Time, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parsePeriod handles period expressions like "this week", "last month".
func parsePeriod(modifier, period string, now time.Time) time.Time {
	previous := strings.EqualFold(modifier, "last") || strings.EqualFold(modifier, "previous")

	var t time.Time
	switch strings.ToLower(period) {
	case "hour":
		t = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		if previous {
			t = t.Add(-time.Hour)
		}

	case "day":
		t = startOfDay(now)
		if previous {
			t = t.AddDate(0, 0, -1)
		}

	case "week":
		// Weeks start on Monday
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		t = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -7)
		}

	case "month":
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}

	case "quarter":
		quarter := (int(now.Month()) - 1) / 3
		t = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -3, 0)
		}

	case "year":
		t = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(-1, 0, 0)
		}

	default:
		t = now
	}
	return t
}
