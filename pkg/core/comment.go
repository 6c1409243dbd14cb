package core

import "strings"

// Action is what happens to the checklist comment on this run
type Action string

const (
	ActionNone   Action = "none"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// FindByMarker returns the first comment whose body contains marker, or nil
func FindByMarker(comments []Comment, marker string) *Comment {
	for i := range comments {
		if strings.Contains(comments[i].Body, marker) {
			return &comments[i]
		}
	}
	return nil
}

// Decide picks the comment action from whether a previous comment exists
// and how many checklist patterns apply
func Decide(existing *Comment, applicable int) Action {
	switch {
	case applicable > 0 && existing != nil:
		return ActionUpdate
	case applicable > 0:
		return ActionCreate
	case existing != nil:
		return ActionDelete
	default:
		return ActionNone
	}
}
