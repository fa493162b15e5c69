package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/dirtrace-ics/internal/calendar"
	"github.com/pfrederiksen/dirtrace-ics/internal/race"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatICS  OutputFormat = "ics"
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// raceJSON is the JSON shape of a race
type raceJSON struct {
	Date   string `json:"date"`
	Grade  string `json:"grade"`
	Name   string `json:"name"`
	Course string `json:"course"`
}

// WriteOutput writes races in the specified format
func WriteOutput(w io.Writer, races []race.Race, format OutputFormat) error {
	switch format {
	case FormatICS:
		return calendar.Write(w, calendar.ToEvents(races))
	case FormatJSON:
		return writeJSON(w, races)
	case FormatText:
		return writeText(w, races)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, races []race.Race) error {
	out := make([]raceJSON, 0, len(races))
	for _, r := range races {
		out = append(out, raceJSON{
			Date:   r.Date.String(),
			Grade:  string(r.Grade),
			Name:   r.Name,
			Course: r.Course,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeText lists races one per line, in the same order as the calendar
func writeText(w io.Writer, races []race.Race) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, "No races found.")
		return err
	}

	for _, r := range races {
		if _, err := fmt.Fprintf(w, "%s  %s(%s)  %s\n", r.Date, r.Name, r.Grade, r.Course); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d races\n", len(races))
	return err
}
