package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stillpoint/practice-api/internal/models"
)

func TestBookAppointment(t *testing.T) {
	r, _ := setup(t)
	tok := userToken(t)

	w := do(t, r, http.MethodPost, "/api/appointments", tok, map[string]string{
		"date": "2026-10-01", "time": "10:30 AM", "consultationType": "sports",
	})
	wantStatus(t, w, http.StatusCreated)
	apt := decode[models.Appointment](t, w)
	if apt.UserID != "2" {
		t.Errorf("booked for user %q, want 2", apt.UserID)
	}
	if apt.UserName != "James Carter" || apt.UserEmail != "james.carter@example.com" {
		t.Errorf("denormalized fields not copied: %q %q", apt.UserName, apt.UserEmail)
	}
	if apt.Status != models.AppointmentPending {
		t.Errorf("new booking status = %q, want pending", apt.Status)
	}

	// the booking shows up in the user's own listing
	w = do(t, r, http.MethodGet, "/api/appointments", tok, nil)
	wantStatus(t, w, http.StatusOK)
	apts := decode[[]models.Appointment](t, w)
	found := false
	for _, a := range apts {
		if a.ID == apt.ID {
			found = true
		}
		if a.UserID != "2" {
			t.Errorf("user listing leaked appointment of user %q", a.UserID)
		}
	}
	if !found {
		t.Error("created appointment missing from user listing")
	}
}

func TestBookAppointmentValidation(t *testing.T) {
	r, _ := setup(t)
	tok := userToken(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing date", map[string]string{"time": "10:30 AM", "consultationType": "general"}},
		{"bad date", map[string]string{"date": "01/10/2026", "time": "10:30 AM", "consultationType": "general"}},
		{"missing time", map[string]string{"date": "2026-10-01", "consultationType": "general"}},
		{"unknown type", map[string]string{"date": "2026-10-01", "time": "10:30 AM", "consultationType": "surgery"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/appointments", tok, tt.body)
			wantStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestAdminAppointmentListing(t *testing.T) {
	r, _ := setup(t)

	w := do(t, r, http.MethodGet, "/api/appointments", adminToken(t), nil)
	wantStatus(t, w, http.StatusOK)
	all := decode[[]models.Appointment](t, w)
	if len(all) != 22 {
		t.Fatalf("admin sees %d appointments, want 22", len(all))
	}

	w = do(t, r, http.MethodGet, "/api/appointments?status=pending", adminToken(t), nil)
	wantStatus(t, w, http.StatusOK)
	pending := decode[[]models.Appointment](t, w)
	for _, a := range pending {
		if a.Status != models.AppointmentPending {
			t.Errorf("status filter leaked %q", a.Status)
		}
	}

	w = do(t, r, http.MethodGet, "/api/appointments?userId=3", adminToken(t), nil)
	wantStatus(t, w, http.StatusOK)
	byUser := decode[[]models.Appointment](t, w)
	for _, a := range byUser {
		if a.UserID != "3" {
			t.Errorf("userId filter leaked appointment of %q", a.UserID)
		}
	}
}

func TestUpdateAppointment(t *testing.T) {
	r, _ := setup(t)
	admin := adminToken(t)

	w := do(t, r, http.MethodPut, "/api/appointments/1", admin, map[string]string{"status": "completed"})
	wantStatus(t, w, http.StatusOK)
	apt := decode[models.Appointment](t, w)
	if apt.Status != models.AppointmentCompleted {
		t.Errorf("status = %q, want completed", apt.Status)
	}

	// transitions are unconstrained: completed may go back to pending
	w = do(t, r, http.MethodPut, "/api/appointments/1", admin, map[string]string{"status": "pending"})
	wantStatus(t, w, http.StatusOK)

	w = do(t, r, http.MethodPut, "/api/appointments/1", admin, map[string]string{"status": "nonsense"})
	wantStatus(t, w, http.StatusBadRequest)

	w = do(t, r, http.MethodPut, "/api/appointments/1", admin, map[string]string{})
	wantStatus(t, w, http.StatusBadRequest)

	w = do(t, r, http.MethodPut, "/api/appointments/999", admin, map[string]string{"status": "confirmed"})
	wantStatus(t, w, http.StatusNotFound)

	// regular users may not hit the update route at all
	w = do(t, r, http.MethodPut, "/api/appointments/1", userToken(t), map[string]string{"status": "confirmed"})
	wantStatus(t, w, http.StatusForbidden)
}

func TestCancelAppointment(t *testing.T) {
	r, _ := setup(t)

	// appointment 1 belongs to user 2
	w := do(t, r, http.MethodPatch, "/api/appointments/1/cancel", userToken(t), nil)
	wantStatus(t, w, http.StatusOK)
	apt := decode[models.Appointment](t, w)
	if apt.Status != models.AppointmentCancelled {
		t.Errorf("status = %q, want cancelled", apt.Status)
	}

	// appointment 2 belongs to user 3; user 2 must not cancel it
	w = do(t, r, http.MethodPatch, "/api/appointments/2/cancel", userToken(t), nil)
	wantStatus(t, w, http.StatusForbidden)

	// but an admin may
	w = do(t, r, http.MethodPatch, "/api/appointments/2/cancel", adminToken(t), nil)
	wantStatus(t, w, http.StatusOK)

	w = do(t, r, http.MethodPatch, "/api/appointments/999/cancel", adminToken(t), nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestDeleteAppointmentTwice(t *testing.T) {
	r, _ := setup(t)
	admin := adminToken(t)

	w := do(t, r, http.MethodDelete, "/api/appointments/2", admin, nil)
	wantStatus(t, w, http.StatusOK)
	removed := decode[models.Appointment](t, w)
	if removed.ID != "2" {
		t.Errorf("deleted id = %q, want 2", removed.ID)
	}

	w = do(t, r, http.MethodDelete, "/api/appointments/2", admin, nil)
	wantStatus(t, w, http.StatusNotFound)

	w = do(t, r, http.MethodDelete, "/api/appointments/1", userToken(t), nil)
	wantStatus(t, w, http.StatusForbidden)
}
