package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError reports markup that did not match the shape the extractors
// expect, including unparsable post dates.
type ParseError struct {
	What  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %q", e.What, e.Value)
}

// dateLayouts are the calendar formats XenForo emits in date strings and
// title attributes, most common first.
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006-01-02",
}

var timePattern = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(AM|PM)\s*$`)

// PostTime combines a calendar date string and a 12-hour clock string into
// a timestamp. Seconds are zero.
//
// The upstream templates render PM hours by always adding 12, which turns
// 12 PM into hour 24 and leaves 12 AM at 12. That is a template bug, not
// intent; this implementation uses the standard conversion (12 AM -> 0,
// 12 PM -> 12) instead.
func PostTime(datePart, timePart string) (time.Time, error) {
	day, err := parseDatePart(datePart)
	if err != nil {
		return time.Time{}, err
	}

	m := timePattern.FindStringSubmatch(timePart)
	if m == nil {
		return time.Time{}, &ParseError{What: "post time", Value: timePart}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 12 || minute > 59 {
		return time.Time{}, &ParseError{What: "post time", Value: timePart}
	}

	switch strings.ToUpper(m[3]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC), nil
}

// SplitDateTitle splits a human-readable "<date> at <time>" title attribute
// into its date and time parts.
func SplitDateTitle(title string) (datePart, timePart string, err error) {
	datePart, timePart, ok := strings.Cut(title, " at ")
	if !ok {
		return "", "", &ParseError{What: "date title", Value: title}
	}
	return datePart, timePart, nil
}

func parseDatePart(datePart string) (time.Time, error) {
	s := strings.TrimSpace(datePart)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{What: "post date", Value: datePart}
}
