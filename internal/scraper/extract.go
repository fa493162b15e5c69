package scraper

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/dirtrace-ics/internal/race"
	"golang.org/x/text/width"
)

// datePattern matches "1/24（水）" and "4/30（振月）". The bracketed annotation is
// the day of the week or a holiday marker and is ignored. Digits may be
// full-width.
var datePattern = regexp.MustCompile(`^([0-9０-９]{1,2})/([0-9０-９]{1,2})（.+）$`)

// ExtractHTML parses an already-decoded HTML document and extracts its races.
func ExtractHTML(r io.Reader, year YearStrategy) ([]race.Race, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Extract(doc, year)
}

// Extract returns the races in doc in document order, without races held at
// excluded venues. The first race that cannot be parsed aborts extraction.
func Extract(doc *goquery.Document, year YearStrategy) ([]race.Race, error) {
	y, err := year.Resolve(doc)
	if err != nil {
		return nil, err
	}

	nodes := ListRaceNodes(doc)
	races := make([]race.Race, 0, nodes.Length())

	var parseErr error
	nodes.EachWithBreak(func(i int, node *goquery.Selection) bool {
		r, err := ParseRace(node, y)
		if err != nil {
			var pe *race.ParseError
			if errors.As(err, &pe) {
				pe.Index = i
			}
			parseErr = err
			return false
		}
		races = append(races, r)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return Filter(races), nil
}

// ListRaceNodes selects every race list item
func ListRaceNodes(doc *goquery.Document) *goquery.Selection {
	return doc.Find("li.race")
}

// ParseRace builds a Race from a single li.race node. The grade is the node's
// second class token, e.g. "jpn3" in class="race jpn3 mare".
// Errors are *race.ParseError values; Index is left for the caller to set.
func ParseRace(node *goquery.Selection, year int) (race.Race, error) {
	classes := strings.Fields(node.AttrOr("class", ""))
	code := ""
	if len(classes) > 1 {
		code = classes[1]
	}
	grade, err := race.LookupGrade(code)
	if err != nil {
		return race.Race{}, fieldError("grade", code, err)
	}

	dateText, err := childText(node, "date")
	if err != nil {
		return race.Race{}, err
	}
	date, err := parseDate(strings.TrimSpace(dateText), year)
	if err != nil {
		return race.Race{}, fieldError("date", dateText, err)
	}

	// The name is kept as written; only an all-blank name is rejected.
	name, err := childText(node, "name")
	if err != nil {
		return race.Race{}, err
	}
	if strings.TrimSpace(name) == "" {
		return race.Race{}, fieldError("name", name, fmt.Errorf("%w: empty name", race.ErrStructural))
	}

	courseText, err := childText(node, "course")
	if err != nil {
		return race.Race{}, err
	}
	course, ok := race.CourseName(courseText)
	if !ok {
		return race.Race{}, fieldError("course", courseText, fmt.Errorf("%w: empty course", race.ErrStructural))
	}

	return race.Race{
		Grade:  grade,
		Date:   date,
		Name:   name,
		Course: course,
	}, nil
}

// Filter drops races at excluded venues, keeping the order of the rest.
func Filter(races []race.Race) []race.Race {
	kept := make([]race.Race, 0, len(races))
	for _, r := range races {
		if r.Excluded() {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func fieldError(field, value string, err error) error {
	return &race.ParseError{Field: field, Value: value, Err: err}
}

// childText returns the untrimmed text of the first .class element.
func childText(node *goquery.Selection, class string) (string, error) {
	sel := node.Find("." + class).First()
	if sel.Length() == 0 {
		return "", fieldError(class, "", fmt.Errorf("%w: no .%s element", race.ErrStructural, class))
	}
	return sel.Text(), nil
}

func parseDate(text string, year int) (race.Date, error) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return race.Date{}, race.ErrMalformedDate
	}

	// The pattern guarantees one or two digits, so Atoi cannot fail.
	month, _ := strconv.Atoi(narrowDigits(m[1]))
	day, _ := strconv.Atoi(narrowDigits(m[2]))

	return race.NewDate(year, time.Month(month), day)
}

// narrowDigits turns full-width digits such as "２４" into "24".
func narrowDigits(s string) string {
	return width.Narrow.String(s)
}
