package scoring

import (
	"strings"

	"github.com/campusforge/appraisal/internal/appraisal"
)

// ScoreEvents awards marks per organized event, capped at 6 on the running
// total. Rules, first match wins:
//   - GIAN course: 2 for two weeks or longer, 1 for a week
//   - Coordinator/Convener of a workshop, FDP or short-term course: 2
//   - Chairman/Secretary of a national or international conference: 3
//   - anything else (webinars, expert lectures, national events): 1
func ScoreEvents(events []appraisal.Event) Category {
	c := newCategory(CatEvents, capEvents)
	for i, e := range events {
		c.add(i, e.Title, eventMarks(e))
	}
	return c
}

func eventMarks(e appraisal.Event) float64 {
	typ := strings.ToLower(e.Type)
	role := strings.ToLower(e.Role)

	if strings.Contains(typ, "gian") {
		if e.DurationWeeks >= 2 {
			return 2
		}
		return 1
	}
	organizer := strings.Contains(role, "coordinator") || strings.Contains(role, "convener")
	if organizer && (strings.Contains(typ, "workshop") || strings.Contains(typ, "fdp") || strings.Contains(typ, "short")) {
		return 2
	}
	officer := strings.Contains(role, "chairman") || strings.Contains(role, "secretary")
	if officer && strings.Contains(typ, "conference") {
		return 3
	}
	return 1
}

// ScoreOutreach awards 1 mark per outreach activity, capped at 7.
func ScoreOutreach(items []appraisal.OutreachActivity) Category {
	c := newCategory(CatOutreach, capOutreach)
	for i, it := range items {
		c.add(i, it.Description, 1)
	}
	return c
}
