package store

import (
	"context"
	"reflect"
	"strconv"
	"testing"

	"github.com/stillpoint/practice-api/internal/models"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(1, DefaultWorkbookCount, DefaultAppointmentCount)
}

func TestSeedBaseline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 5 {
		t.Fatalf("seeded users = %d, want 5", len(users))
	}
	if users[0].Role != models.RoleAdmin {
		t.Errorf("user 1 role = %q, want admin", users[0].Role)
	}
	for _, u := range users[1:] {
		if u.Role != models.RoleUser {
			t.Errorf("user %s role = %q, want user", u.ID, u.Role)
		}
	}

	apts, err := s.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list appointments: %v", err)
	}
	if len(apts) != 2+DefaultAppointmentCount {
		t.Fatalf("seeded appointments = %d, want %d", len(apts), 2+DefaultAppointmentCount)
	}

	wbs, err := s.ListWorkbooks(ctx)
	if err != nil {
		t.Fatalf("list workbooks: %v", err)
	}
	if len(wbs) != DefaultWorkbookCount {
		t.Fatalf("seeded workbooks = %d, want %d", len(wbs), DefaultWorkbookCount)
	}
}

func TestWorkbookSeedStatusRanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := func(i int) models.WorkbookStatus {
		switch {
		case i <= 10:
			return models.WorkbookAssigned
		case i <= 20:
			return models.WorkbookInProgress
		case i <= 30:
			return models.WorkbookSubmitted
		default:
			return models.WorkbookReviewed
		}
	}
	for i := 1; i <= DefaultWorkbookCount; i++ {
		wb, err := s.GetWorkbook(ctx, models.ID(strconv.Itoa(i)))
		if err != nil || wb == nil {
			t.Fatalf("workbook %d missing: %v", i, err)
		}
		if wb.Status != want(i) {
			t.Errorf("workbook %d status = %q, want %q", i, wb.Status, want(i))
		}
	}
}

func TestWorkbookSeedAssigneeChain(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		index int
		want  models.ID
	}{
		{15, "5"}, // divisible by 5 wins
		{30, "5"},
		{9, "3"}, // then by 3
		{21, "3"},
		{2, "2"}, // then by 2
		{22, "2"},
		{7, ""}, // otherwise unassigned
		{23, ""},
	}
	for _, tt := range tests {
		wb, err := s.GetWorkbook(ctx, models.ID(strconv.Itoa(tt.index)))
		if err != nil || wb == nil {
			t.Fatalf("workbook %d missing: %v", tt.index, err)
		}
		if wb.AssignedTo != tt.want {
			t.Errorf("workbook %d assignedTo = %q, want %q", tt.index, wb.AssignedTo, tt.want)
		}
	}
}

func TestGeneratedQuestionShape(t *testing.T) {
	s := newTestStore(t)
	wbs, _ := s.ListWorkbooks(context.Background())

	for _, wb := range wbs {
		if n := len(wb.Questions); n < 5 || n > 10 {
			t.Fatalf("workbook %s has %d questions, want 5..10", wb.ID, n)
		}
		for _, q := range wb.Questions {
			if q.Type.NeedsOptions() && len(q.Options) == 0 {
				t.Errorf("workbook %s question %s (%s) has no options", wb.ID, q.ID, q.Type)
			}
			if !q.Type.NeedsOptions() && len(q.Options) != 0 {
				t.Errorf("workbook %s question %s (%s) should not have options", wb.ID, q.ID, q.Type)
			}
		}
	}
}

func TestSeedReproducibleWithSameSeed(t *testing.T) {
	a := NewMemoryStore(42, DefaultWorkbookCount, DefaultAppointmentCount)
	b := NewMemoryStore(42, DefaultWorkbookCount, DefaultAppointmentCount)

	wa, _ := a.ListWorkbooks(context.Background())
	wb, _ := b.ListWorkbooks(context.Background())
	for i := range wa {
		if !reflect.DeepEqual(wa[i].Questions, wb[i].Questions) {
			t.Fatalf("workbook %s: question sets differ across stores with the same seed", wa[i].ID)
		}
	}
}

func TestAssignWorkbookResetsStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// workbook 35 is seeded reviewed
	wb, err := s.AssignWorkbook(ctx, "35", "4")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if wb == nil {
		t.Fatal("assign returned nil for existing workbook")
	}
	if wb.Status != models.WorkbookAssigned {
		t.Errorf("status after assign = %q, want assigned", wb.Status)
	}
	if wb.AssignedTo != "4" {
		t.Errorf("assignedTo = %q, want 4", wb.AssignedTo)
	}

	if wb, _ := s.AssignWorkbook(ctx, "nope", "4"); wb != nil {
		t.Error("assign of missing workbook should return nil")
	}
}

func TestAppointmentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := &models.Appointment{
		UserID:           "3",
		UserName:         "Priya Nair",
		UserEmail:        "priya.nair@example.com",
		Date:             "2026-09-15",
		Time:             "09:00 AM",
		ConsultationType: models.ConsultationSports,
		Status:           models.AppointmentPending,
	}
	created, err := s.CreateAppointment(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID.IsZero() || created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("server-assigned fields not set")
	}

	got, err := s.GetAppointment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("created appointment not found")
	}
	if !reflect.DeepEqual(*got, *created) {
		t.Errorf("round trip mismatch: got %+v, created %+v", got, created)
	}
}

func TestDeleteAppointmentIdempotence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, _ := s.ListAppointments(ctx)

	if removed, _ := s.DeleteAppointment(ctx, "does-not-exist"); removed != nil {
		t.Fatal("delete of missing id should return nil")
	}
	after, _ := s.ListAppointments(ctx)
	if len(after) != len(before) {
		t.Fatalf("missing-id delete changed length %d -> %d", len(before), len(after))
	}

	removed, err := s.DeleteAppointment(ctx, "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed == nil || removed.ID != "1" {
		t.Fatalf("first delete returned %+v, want record 1", removed)
	}
	if removed, _ := s.DeleteAppointment(ctx, "1"); removed != nil {
		t.Fatal("second delete of same id should return nil")
	}
	after, _ = s.ListAppointments(ctx)
	if len(after) != len(before)-1 {
		t.Fatalf("length after delete = %d, want %d", len(after), len(before)-1)
	}
}

func TestUpdateAppointmentMissingID(t *testing.T) {
	s := newTestStore(t)
	confirmed := models.AppointmentConfirmed
	apt, err := s.UpdateAppointment(context.Background(), "999", AppointmentUpdate{Status: &confirmed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if apt != nil {
		t.Fatal("update of missing id should return nil")
	}
}

func TestPasswordBypass(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{
		"sarah@stillpoint.example",
		"james.carter@example.com",
		"priya.nair@example.com",
		"daniel.brooks@example.com",
		"elena.petrova@example.com",
	} {
		u, err := s.UserByEmail(ctx, email)
		if err != nil || u == nil {
			t.Fatalf("seeded user %s missing: %v", email, err)
		}
		if !u.ComparePassword(MockPassword) {
			t.Errorf("user %s rejects the mock credential", email)
		}
		if u.ComparePassword("anything-else") {
			t.Errorf("user %s accepts an arbitrary password", email)
		}
	}
}

func TestCreateUserSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &models.User{Name: "X", Email: "x@x.com", Password: "p"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "6" {
		t.Errorf("new user id = %q, want 6", created.ID)
	}
	if created.Role != models.RoleUser {
		t.Errorf("new user role = %q, want user", created.Role)
	}
	if created.Password != MockPassword {
		t.Errorf("mock store should keep the placeholder credential, got %q", created.Password)
	}

	users, _ := s.ListUsers(ctx)
	if len(users) != 6 {
		t.Fatalf("users after create = %d, want 6", len(users))
	}
}

func TestUserAnswersSurviveUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	wb, _ := s.GetWorkbook(ctx, "2")
	questions := wb.Questions
	questions[0].UserAnswer = []string{"every day"}
	submitted := models.WorkbookSubmitted
	updated, err := s.UpdateWorkbook(ctx, "2", WorkbookUpdate{Questions: &questions, Status: &submitted})
	if err != nil || updated == nil {
		t.Fatalf("update: %v", err)
	}
	if got := updated.Questions[0].UserAnswer; len(got) != 1 || got[0] != "every day" {
		t.Fatalf("answer not persisted: %v", got)
	}
	if updated.Status != models.WorkbookSubmitted {
		t.Errorf("status = %q, want submitted", updated.Status)
	}

	// the store must not alias caller-held slices
	questions[0].UserAnswer[0] = "mutated"
	fresh, _ := s.GetWorkbook(ctx, "2")
	if fresh.Questions[0].UserAnswer[0] != "every day" {
		t.Error("store state changed through a caller-held slice")
	}
}
