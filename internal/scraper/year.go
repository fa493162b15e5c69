package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/dirtrace-ics/internal/race"
)

// YearMode selects where the schedule year comes from
type YearMode string

const (
	// YearFromHeading reads the year from the "レース一覧（2018年）" heading.
	YearFromHeading YearMode = "heading"
	// YearFixed uses a year supplied by the caller.
	YearFixed YearMode = "fixed"
)

// ParseYearMode validates a mode name from flags or the environment.
func ParseYearMode(s string) (YearMode, error) {
	switch m := YearMode(strings.ToLower(strings.TrimSpace(s))); m {
	case YearFromHeading, YearFixed:
		return m, nil
	default:
		return "", fmt.Errorf("invalid year mode: %q (must be 'heading' or 'fixed')", s)
	}
}

// YearStrategy resolves the year that race dates belong to. Race date text
// carries only month and day.
type YearStrategy struct {
	Mode YearMode
	Year int // used when Mode is YearFixed
}

// FromHeading returns a strategy that reads the year from the page.
func FromHeading() YearStrategy {
	return YearStrategy{Mode: YearFromHeading}
}

// Fixed returns a strategy that always uses year.
func Fixed(year int) YearStrategy {
	return YearStrategy{Mode: YearFixed, Year: year}
}

// Resolve returns the schedule year for doc.
func (s YearStrategy) Resolve(doc *goquery.Document) (int, error) {
	switch s.Mode {
	case YearFromHeading:
		return ExtractYear(doc)
	case YearFixed:
		if s.Year <= 0 {
			return 0, fmt.Errorf("%w: fixed year not set", race.ErrMissingContext)
		}
		return s.Year, nil
	default:
		return 0, fmt.Errorf("%w: unknown year mode %q", race.ErrMissingContext, s.Mode)
	}
}

var yearHeadingPattern = regexp.MustCompile(`^レース一覧（([0-9０-９]{4})年）$`)

// ExtractYear finds the single "レース一覧（NNNN年）" heading and returns its year.
// A missing or repeated heading is an error.
func ExtractYear(doc *goquery.Document) (int, error) {
	var years []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, sel *goquery.Selection) {
		if m := yearHeadingPattern.FindStringSubmatch(strings.TrimSpace(sel.Text())); m != nil {
			years = append(years, m[1])
		}
	})

	switch len(years) {
	case 0:
		return 0, fmt.Errorf("%w: no year heading found", race.ErrMissingContext)
	case 1:
	default:
		return 0, fmt.Errorf("%w: %d year headings found", race.ErrMissingContext, len(years))
	}

	year, err := strconv.Atoi(narrowDigits(years[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", race.ErrMissingContext, err)
	}
	return year, nil
}
