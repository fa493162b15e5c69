// Package calendar turns races into all-day iCalendar events.
package calendar

import (
	"crypto/sha1"
	"fmt"

	"github.com/pfrederiksen/dirtrace-ics/internal/race"
)

// Transparent marks an event as not occupying free/busy time.
const Transparent = "TRANSPARENT"

// Event is a single all-day calendar entry for a race
type Event struct {
	Summary      string
	Start        race.Date
	End          race.Date // always equal to Start
	Location     string
	Transparency string
}

// ToEvent maps a race to its calendar event, e.g. "TCK女王盃(JpnⅢ)" at 大井競馬場.
func ToEvent(r race.Race) Event {
	return Event{
		Summary:      r.Name + "(" + string(r.Grade) + ")",
		Start:        r.Date,
		End:          r.Date,
		Location:     r.Course,
		Transparency: Transparent,
	}
}

// ToEvents maps every race, keeping order.
func ToEvents(races []race.Race) []Event {
	events := make([]Event, 0, len(races))
	for _, r := range races {
		events = append(events, ToEvent(r))
	}
	return events
}

// UID creates a deterministic identifier from the date and summary, so
// re-importing a regenerated file updates events instead of duplicating them.
func (e Event) UID() string {
	h := sha1.New()
	h.Write([]byte(e.Start.Format() + "|" + e.Summary))
	return fmt.Sprintf("%x@dirtrace-ics", h.Sum(nil))
}
