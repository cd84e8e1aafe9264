package models

import "fmt"

// Priority is the urgency of a deal
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied to cards created without one
const DefaultPriority = PriorityMedium

// ParsePriority converts a raw value into a Priority.
// An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return DefaultPriority, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}
