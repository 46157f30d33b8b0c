package mongodb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stillpoint/practice-api/internal/models"
	"github.com/stillpoint/practice-api/internal/store/mongodb"
)

// The suite runs against a real instance and is skipped otherwise; set
// MONGO_TEST_URI to enable it. Each run works in its own throwaway database.
func setup(t *testing.T) *mongodb.Store {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	dbName := "practice_test_" + uuid.New().String()[:8]
	db := client.Database(dbName)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return mongodb.New(db)
}

func TestAppointmentLifecycle(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	created, err := st.CreateAppointment(ctx, &models.Appointment{
		UserID:           "u1",
		UserName:         "Test User",
		UserEmail:        "test@example.com",
		Date:             "2026-10-01",
		Time:             "10:30 AM",
		ConsultationType: models.ConsultationGeneral,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.AppointmentPending {
		t.Errorf("default status = %q, want pending", created.Status)
	}

	got, err := st.GetAppointment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("round trip failed: %+v", got)
	}

	if missing, err := st.GetAppointment(ctx, "missing"); err != nil || missing != nil {
		t.Fatalf("absent lookup = (%+v, %v), want (nil, nil)", missing, err)
	}

	removed, err := st.DeleteAppointment(ctx, created.ID)
	if err != nil || removed == nil {
		t.Fatalf("delete = (%+v, %v)", removed, err)
	}
	if again, err := st.DeleteAppointment(ctx, created.ID); err != nil || again != nil {
		t.Fatalf("second delete = (%+v, %v), want (nil, nil)", again, err)
	}
}

func TestWorkbookAssignmentResetsStatus(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	wb, err := st.CreateWorkbook(ctx, &models.Workbook{
		Title:  "Managing Daily Stress",
		Status: models.WorkbookReviewed,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	assigned, err := st.AssignWorkbook(ctx, wb.ID, "u2")
	if err != nil || assigned == nil {
		t.Fatalf("assign = (%+v, %v)", assigned, err)
	}
	if assigned.Status != models.WorkbookAssigned {
		t.Errorf("status = %q, want assigned", assigned.Status)
	}
	if assigned.AssignedTo != "u2" {
		t.Errorf("assignedTo = %q, want u2", assigned.AssignedTo)
	}
}
