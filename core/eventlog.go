package core

import (
	"sort"
	"strconv"
	"strings"
)

const (
	SortOrderAsc  = "ASC"
	SortOrderDesc = "DESC"

	// UnlimitedEventLogPage is the sentinel for "no explicit limit". Absent or
	// unparseable limits normalize to this value, never to zero.
	UnlimitedEventLogPage = -1
)

// EventLogFilter describes one page request against the append-only event
// log. Data holds equality predicates that must all match (logical AND).
type EventLogFilter struct {
	Limit         int
	StartingAfter string
	SortBy        string
	SortOrder     string
	Data          map[string]string
}

type EventLogPage struct {
	Events     []Event
	HasMore    bool
	NextCursor string
}

// ParseEventLogFilter normalizes raw query input into an EventLogFilter.
// Parsing is deliberately permissive: a missing or non-numeric limit becomes
// UnlimitedEventLogPage, and a filter pair without "=" maps its key to the
// empty string.
func ParseEventLogFilter(limit string, pairs []string, startingAfter string, sortBy string, sortOrder string) EventLogFilter {
	parsed := UnlimitedEventLogPage
	if value, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil {
		parsed = value
	}

	data := map[string]string{}
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		data[key] = value
	}

	return EventLogFilter{
		Limit:         parsed,
		StartingAfter: strings.TrimSpace(startingAfter),
		SortBy:        strings.TrimSpace(sortBy),
		SortOrder:     strings.TrimSpace(sortOrder),
		Data:          data,
	}
}

func (f EventLogFilter) descending() bool {
	return strings.EqualFold(strings.TrimSpace(f.SortOrder), SortOrderDesc)
}

// Matches reports whether every data predicate equals the event's
// corresponding field. Events missing a filtered field do not match.
func (f EventLogFilter) Matches(event Event) bool {
	for key, want := range f.Data {
		got, ok := event.Field(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// FilterEvents runs the query engine over events already ordered by insertion
// sequence: apply predicates, sort, resume strictly after the cursor, then
// cut the page. The cursor is the id of the last record of the previous page;
// because input order is insertion order and the sort is stable, a cursor
// keeps its position under concurrent appends.
func FilterEvents(events []Event, filter EventLogFilter) EventLogPage {
	matched := make([]Event, 0, len(events))
	for _, event := range events {
		if filter.Matches(event) {
			matched = append(matched, event)
		}
	}

	if sortBy := strings.TrimSpace(filter.SortBy); sortBy != "" {
		descending := filter.descending()
		sort.SliceStable(matched, func(i, j int) bool {
			left, _ := matched[i].Field(sortBy)
			right, _ := matched[j].Field(sortBy)
			if descending {
				return left > right
			}
			return left < right
		})
	} else if filter.descending() {
		reverseEvents(matched)
	}

	if cursor := strings.TrimSpace(filter.StartingAfter); cursor != "" {
		for i, event := range matched {
			if event.ID == cursor {
				matched = matched[i+1:]
				break
			}
		}
	}

	page := matched
	hasMore := false
	if filter.Limit > 0 && len(matched) > filter.Limit {
		page = matched[:filter.Limit]
		hasMore = true
	}

	nextCursor := ""
	if len(page) > 0 {
		nextCursor = page[len(page)-1].ID
	}
	return EventLogPage{
		Events:     page,
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}
}

func reverseEvents(events []Event) {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
}
