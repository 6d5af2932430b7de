// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventRegistration is a visitor's sign-up for an Event.
//
// EventTitle is copied from the event at creation so listings and search do
// not need a join. RegistrationDate is set once at creation. Deleting the
// event does not remove its registrations.
type EventRegistration struct {
	Base `bson:",inline"`

	EventID    primitive.ObjectID `bson:"event_id" json:"eventId"`
	EventTitle string             `bson:"event_title" json:"eventTitle"`

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Country string `bson:"country,omitempty" json:"country"`

	PreferredDestination string `bson:"preferred_destination,omitempty" json:"preferredDestination"`
	StudyLevel           string `bson:"study_level,omitempty" json:"studyLevel"`
	Requirements         string `bson:"requirements,omitempty" json:"requirements"`
	Notes                string `bson:"notes,omitempty" json:"notes"`

	Status           string    `bson:"status" json:"status"`
	PaymentStatus    string    `bson:"payment_status" json:"paymentStatus"`
	RegistrationDate time.Time `bson:"registration_date" json:"registrationDate"`
}
