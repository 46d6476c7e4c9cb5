package extract

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	minYear = 1990
	maxYear = 2100
)

var (
	dottedDate  = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2,4})`)
	slashedDate = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)
	isoDate     = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	spelledDate = regexp.MustCompile(`(?i)(\d{1,2})\.?\s*(januar|jänner|februar|märz|april|mai|juni|juli|august|september|oktober|november|dezember|january|february|march|may|june|july|october|december)\s*(\d{4})`)
)

var monthNames = map[string]time.Month{
	"januar": time.January, "jänner": time.January, "january": time.January,
	"februar": time.February, "february": time.February,
	"märz": time.March, "march": time.March,
	"april":  time.April,
	"mai":    time.May, "may": time.May,
	"juni":   time.June, "june": time.June,
	"juli":   time.July, "july": time.July,
	"august": time.August, "september": time.September,
	"oktober": time.October, "october": time.October,
	"november": time.November,
	"dezember": time.December, "december": time.December,
}

// DetectDates returns the distinct calendar dates mentioned in text, newest first.
// Two-digit years below 50 are read as 20xx, the rest as 19xx. Years outside
// 1990-2100 and impossible days are ignored.
func DetectDates(text string) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time

	add := func(year, month, day int) {
		if year < 100 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 || day > 31 {
			return
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow such as 31.02.; reject it
		if d.Day() != day {
			return
		}
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	for _, re := range []*regexp.Regexp{dottedDate, slashedDate} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			day, month, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
			if len(m[3]) == 3 {
				continue
			}
			add(year, month, day)
		}
	}

	for _, m := range isoDate.FindAllStringSubmatch(text, -1) {
		add(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	for _, m := range spelledDate.FindAllStringSubmatch(text, -1) {
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		add(atoi(m[3]), int(month), atoi(m[1]))
	}

	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a)
	})
	return dates
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
