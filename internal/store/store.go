// Package store defines the persistence contract for the practice API and
// provides its in-memory implementation. Lookups by id return (nil, nil) when
// the record is absent; an error means the operation itself failed, which the
// in-memory store never does.
package store

import (
	"context"

	"github.com/stillpoint/practice-api/internal/models"
)

// UserUpdate carries the profile fields a user may change. Role is
// deliberately absent: updates are role-preserving.
type UserUpdate struct {
	Name  *string
	Phone *string
}

// AppointmentUpdate is a partial update; nil fields are left untouched.
type AppointmentUpdate struct {
	Date             *string
	Time             *string
	ConsultationType *models.ConsultationType
	Status           *models.AppointmentStatus
}

// WorkbookUpdate is a partial update; nil fields are left untouched.
type WorkbookUpdate struct {
	Title         *string
	Description   *string
	Content       *string
	Status        *models.WorkbookStatus
	UserResponse  *string
	AdminFeedback *string
	Questions     *[]models.Question
}

type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id models.ID) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id models.ID, upd UserUpdate) (*models.User, error)
}

type AppointmentStore interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID models.ID) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id models.ID) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, a *models.Appointment) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id models.ID, upd AppointmentUpdate) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id models.ID) (*models.Appointment, error)
}

type WorkbookStore interface {
	ListWorkbooks(ctx context.Context) ([]models.Workbook, error)
	ListWorkbooksByUser(ctx context.Context, userID models.ID) ([]models.Workbook, error)
	GetWorkbook(ctx context.Context, id models.ID) (*models.Workbook, error)
	CreateWorkbook(ctx context.Context, w *models.Workbook) (*models.Workbook, error)
	UpdateWorkbook(ctx context.Context, id models.ID, upd WorkbookUpdate) (*models.Workbook, error)
	DeleteWorkbook(ctx context.Context, id models.ID) (*models.Workbook, error)
	AssignWorkbook(ctx context.Context, workbookID, userID models.ID) (*models.Workbook, error)
}

// Store is the full persistence surface the handlers depend on.
type Store interface {
	UserStore
	AppointmentStore
	WorkbookStore
}
