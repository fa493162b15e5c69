package calendar

import (
	"fmt"
	"io"

	ics "github.com/arran4/golang-ical"
)

const ProductID = "-//dirtrace-ics//dirtrace-ics//JA"

// Build assembles an iCalendar with one VEVENT per event
func Build(events []Event) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)

	for _, e := range events {
		vevent := cal.AddEvent(e.UID())
		vevent.SetSummary(e.Summary)
		vevent.SetAllDayStartAt(e.Start.Time())
		vevent.SetAllDayEndAt(e.End.Time())
		vevent.SetLocation(e.Location)
		vevent.SetProperty(ics.ComponentPropertyTransp, e.Transparency)
	}

	return cal
}

// Write serializes events as an iCalendar document to w. Lines end in CRLF
// whatever the host OS.
func Write(w io.Writer, events []Event) error {
	if err := Build(events).SerializeTo(w, ics.WithNewLineWindows); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
