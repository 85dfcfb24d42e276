package cycle

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNoIdeas indicates an empty idea list.
var ErrNoIdeas = errors.New("idea list is empty")

// IdeaList is an immutable, circularly indexed list of break ideas.
type IdeaList struct {
	items []string
}

// NewIdeaList copies items into a new list.
func NewIdeaList(items []string) (IdeaList, error) {
	if len(items) == 0 {
		return IdeaList{}, ErrNoIdeas
	}
	return IdeaList{items: append([]string(nil), items...)}, nil
}

// Len returns the number of ideas.
func (list IdeaList) Len() int {
	return len(list.items)
}

// At returns the idea for the given cycle counter, wrapping around the list.
func (list IdeaList) At(counter int) string {
	size := len(list.items)
	if size == 0 {
		return ""
	}
	index := counter % size
	if index < 0 {
		index += size
	}
	return list.items[index]
}

// Items returns a copy of the ideas.
func (list IdeaList) Items() []string {
	return append([]string(nil), list.items...)
}

// WorkMessage is the body of the notification opening a work phase.
func WorkMessage(cycle int) string {
	return fmt.Sprintf("Work session %d started", cycle)
}

// BreakMessage is the body of the notification opening a break phase.
func BreakMessage(idea string, breakDuration time.Duration) string {
	return fmt.Sprintf("%s\n\nRelax for %s", idea, formatBreak(breakDuration))
}

func formatBreak(duration time.Duration) string {
	if duration%time.Minute != 0 {
		return duration.String()
	}
	minutes := int(duration / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
