package models

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type ConsultationType string

const (
	ConsultationGeneral        ConsultationType = "general"
	ConsultationSports         ConsultationType = "sports"
	ConsultationRehabilitation ConsultationType = "rehabilitation"
	ConsultationChronic        ConsultationType = "chronic"
)

// Appointment is a booked consultation slot. UserName and UserEmail are
// denormalized copies of the booking user's fields and are not kept in sync
// with later profile updates.
type Appointment struct {
	ID               ID                `bson:"_id,omitempty" json:"id"`
	UserID           ID                `bson:"userId" json:"userId"`
	UserName         string            `bson:"userName" json:"userName"`
	UserEmail        string            `bson:"userEmail" json:"userEmail"`
	Date             string            `bson:"date" json:"date"` // ISO date, 2006-01-02
	Time             string            `bson:"time" json:"time"` // free-text slot, e.g. "10:30 AM"
	ConsultationType ConsultationType  `bson:"consultationType" json:"consultationType"`
	Status           AppointmentStatus `bson:"status" json:"status"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}
