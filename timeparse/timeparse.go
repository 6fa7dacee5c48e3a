// Package timeparse resolves free-text date/time expressions such as
// "July 14 at 7pm" into absolute times anchored to a reference time and a
// configured timezone.
package timeparse

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnparseable is returned when no known time format matches the input.
// Callers re-prompt the user rather than advancing the dialog.
var ErrUnparseable = errors.New("unparseable time expression")

// layout pairs a time format with the components it carries, so missing
// components can be completed from the reference time afterwards.
type layout struct {
	format   string
	hasDate  bool
	hasYear  bool
	hasClock bool
}

// Ordered most-specific first; the first format that parses wins.
var layouts = []layout{
	{"Jan 2 2006 3:4PM", true, true, true},
	{"Jan 2 2006 3PM", true, true, true},
	{"Jan 2 2006 15:4", true, true, true},
	{"Jan 2 3:4PM", true, false, true},
	{"Jan 2 3PM", true, false, true},
	{"Jan 2 15:4", true, false, true},
	{"2 Jan 2006 3:4PM", true, true, true},
	{"2 Jan 3:4PM", true, false, true},
	{"2 Jan 3PM", true, false, true},
	{"1/2/2006 3:4PM", true, true, true},
	{"1/2/2006 3PM", true, true, true},
	{"1/2/2006 15:4", true, true, true},
	{"1/2 3:4PM", true, false, true},
	{"1/2 3PM", true, false, true},
	{"2006-1-2 15:4", true, true, true},
	{"2006-1-2 3:4PM", true, true, true},
	{"Jan 2 2006", true, true, false},
	{"2006-1-2", true, true, false},
	{"1/2/2006", true, true, false},
	{"Jan 2", true, false, false},
	{"2 Jan", true, false, false},
	{"3:4PM", false, false, true},
	{"3PM", false, false, true},
	{"15:4", false, false, true},
}

var months = map[string]string{
	"January": "Jan", "February": "Feb", "March": "Mar", "April": "Apr",
	"June": "Jun", "July": "Jul", "August": "Aug", "September": "Sep",
	"Sept": "Sep", "October": "Oct", "November": "Nov", "December": "Dec",
}

var (
	ordinalRe = regexp.MustCompile(`\b(\d{1,2})(?i:st|nd|rd|th)\b`)
	pmRe      = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{1,2})?)\s*p\.?m\.?\b`)
	amRe      = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{1,2})?)\s*a\.?m\.?\b`)
	alphaRe   = regexp.MustCompile(`^[A-Za-z']+$`)
)

var titleCaser = cases.Title(language.English)

// normalize rewrites the input into the vocabulary of the layout table:
// stripped punctuation, Title-cased month names, digitNPM clock suffixes.
// It also extracts "today"/"tomorrow", which carry the date relative to the
// reference rather than inside the parsed string.
func normalize(text string) (normalized string, dayOffset int, relative bool) {
	t := strings.NewReplacer(",", "", ".", "", "(", "", ")", "").Replace(strings.TrimSpace(text))
	t = ordinalRe.ReplaceAllString(t, "$1")
	t = pmRe.ReplaceAllString(t, "${1}PM")
	t = amRe.ReplaceAllString(t, "${1}AM")

	var kept []string
	for _, f := range strings.Fields(t) {
		if alphaRe.MatchString(f) {
			f = titleCaser.String(strings.ReplaceAll(f, "'", ""))
		}
		switch f {
		case "At", "On", "Of", "The", "Oclock":
			continue
		case "Today":
			relative = true
			continue
		case "Tomorrow":
			relative = true
			dayOffset = 1
			continue
		}
		if abbr, ok := months[f]; ok {
			f = abbr
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " "), dayOffset, relative
}

// Resolve parses a natural-language time expression against a reference time.
// Components absent from the input are completed from the reference; a date
// without an explicit year that has already passed rolls forward one year,
// and a bare clock time that has passed today resolves to tomorrow.
func Resolve(text string, ref time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = ref.Location()
	}
	ref = ref.In(loc)

	norm, dayOffset, relative := normalize(text)
	if norm == "" {
		if relative {
			base := ref.AddDate(0, 0, dayOffset)
			return time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, loc), nil
		}
		return time.Time{}, ErrUnparseable
	}

	for _, ly := range layouts {
		parsed, err := time.ParseInLocation(ly.format, norm, loc)
		if err != nil {
			continue
		}
		if relative && ly.hasDate {
			// "tomorrow July 14" is contradictory; trust the explicit date.
			relative = false
		}
		return complete(parsed, ly, ref, loc, dayOffset, relative), nil
	}
	return time.Time{}, ErrUnparseable
}

func complete(parsed time.Time, ly layout, ref time.Time, loc *time.Location, dayOffset int, relative bool) time.Time {
	if relative || !ly.hasDate {
		base := ref.AddDate(0, 0, dayOffset)
		res := time.Date(base.Year(), base.Month(), base.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, loc)
		if !relative && res.Before(ref) {
			res = res.AddDate(0, 0, 1)
		}
		return res
	}

	year := parsed.Year()
	if !ly.hasYear {
		year = ref.Year()
	}
	res := time.Date(year, parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc)
	if !ly.hasYear && res.Before(ref) {
		res = res.AddDate(1, 0, 0)
	}
	return res
}
