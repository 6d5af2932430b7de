// Package status holds the lifecycle rules for publishable content and event
// registrations.
package status

import (
	"fmt"

	"github.com/dalemusser/edupath/internal/domain/models"
)

// TransitionError reports a status change the lifecycle does not allow.
type TransitionError struct {
	From, To string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

var content = map[string][]string{
	models.StatusDraft:     {models.StatusPublished},
	models.StatusPublished: {models.StatusArchived, models.StatusDraft},
}

var registration = map[string][]string{
	models.RegistrationPending:   {models.RegistrationConfirmed, models.RegistrationCancelled},
	models.RegistrationConfirmed: {models.RegistrationCancelled},
	models.RegistrationCancelled: {models.RegistrationConfirmed},
}

// CheckContent validates a draft/published/archived change. Archived is
// terminal. Writing the current status again is always allowed.
func CheckContent(from, to string) error {
	return check(content, from, to)
}

// CheckRegistration validates a pending/confirmed/cancelled change.
func CheckRegistration(from, to string) error {
	return check(registration, from, to)
}

func check(rules map[string][]string, from, to string) error {
	if from == to || from == "" {
		return nil
	}
	for _, next := range rules[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// Publishing reports whether a content change moves a record into published.
func Publishing(from, to string) bool {
	return to == models.StatusPublished && from != models.StatusPublished
}
