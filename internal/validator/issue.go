// Package validator runs structural and naming checks over a project and
// returns a leveled issue list. It never throws away findings: every check
// runs to completion so a host can display all problems at once. Whether
// error-level issues block an export is the host's call, not this package's.
package validator

import "github.com/google/uuid"

// Level grades an issue. Errors mark structural or naming violations that
// should block export; warnings are advisory.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Element types attached to issues for UI navigation.
const (
	ElementInstrument = "instrument"
	ElementTopic      = "topic"
	ElementState      = "state"
	ElementTransition = "transition"
)

// Issue is one validation finding. TopicID, ElementID and ElementType locate
// the offending element for the editing surface; the compiler itself ignores
// them.
type Issue struct {
	ID          string `json:"id"`
	Level       Level  `json:"level"`
	Message     string `json:"message"`
	TopicID     string `json:"topicId,omitempty"`
	ElementID   string `json:"elementId,omitempty"`
	ElementType string `json:"elementType,omitempty"`
}

// HasErrors reports whether any issue in the list is error-level.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Level == LevelError {
			return true
		}
	}
	return false
}

// issueList accumulates findings during a validation run.
type issueList struct {
	issues []Issue
}

func (l *issueList) add(level Level, message, topicID, elementID, elementType string) {
	l.issues = append(l.issues, Issue{
		ID:          uuid.NewString(),
		Level:       level,
		Message:     message,
		TopicID:     topicID,
		ElementID:   elementID,
		ElementType: elementType,
	})
}

func (l *issueList) errorf(message, topicID, elementID, elementType string) {
	l.add(LevelError, message, topicID, elementID, elementType)
}

func (l *issueList) warnf(message, topicID, elementID, elementType string) {
	l.add(LevelWarning, message, topicID, elementID, elementType)
}
