// internal/domain/models/status.go
package models

// Content status values shared by Blog and Event.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ContentStatuses is the closed set of content statuses.
var ContentStatuses = []string{StatusDraft, StatusPublished, StatusArchived}

// Registration status values.
const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// RegistrationStatuses is the closed set of registration statuses.
var RegistrationStatuses = []string{RegistrationPending, RegistrationConfirmed, RegistrationCancelled}

// Payment status values for event registrations.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// PaymentStatuses is the closed set of payment statuses.
var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentRefunded}
