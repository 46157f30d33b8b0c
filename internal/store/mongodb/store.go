// Package mongodb implements the store contract over MongoDB for non-mock
// deployments. Absent records are reported as (nil, nil), matching the
// in-memory store.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stillpoint/practice-api/internal/models"
	"github.com/stillpoint/practice-api/internal/store"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) users() *mongo.Collection        { return s.db.Collection("users") }
func (s *Store) appointments() *mongo.Collection { return s.db.Collection("appointments") }
func (s *Store) workbooks() *mongo.Collection    { return s.db.Collection("workbooks") }

func newID() models.ID { return models.ID(primitive.NewObjectID().Hex()) }

// absent maps the driver's no-documents error to the store contract.
func absent(err error) bool { return errors.Is(err, mongo.ErrNoDocuments) }

// ----- users -----

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetUser(ctx context.Context, id models.ID) (*models.User, error) {
	var u models.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u = u.Sanitized()
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now()
	created := *u
	created.ID = newID()
	if created.Role == "" {
		created.Role = models.RoleUser
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	if _, err := s.users().InsertOne(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) UpdateUser(ctx context.Context, id models.ID, upd store.UserUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	return s.findUserAndUpdate(ctx, id, set)
}

func (s *Store) findUserAndUpdate(ctx context.Context, id models.ID, set bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.users().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u = u.Sanitized()
	return &u, nil
}

// ----- appointments -----

func (s *Store) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return s.findAppointments(ctx, bson.M{})
}

func (s *Store) ListAppointmentsByUser(ctx context.Context, userID models.ID) ([]models.Appointment, error) {
	return s.findAppointments(ctx, bson.M{"userId": userID})
}

func (s *Store) findAppointments(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.appointments().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetAppointment(ctx context.Context, id models.ID) (*models.Appointment, error) {
	var a models.Appointment
	err := s.appointments().FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) (*models.Appointment, error) {
	now := time.Now()
	created := *a
	created.ID = newID()
	if created.Status == "" {
		created.Status = models.AppointmentPending
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	if _, err := s.appointments().InsertOne(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, id models.ID, upd store.AppointmentUpdate) (*models.Appointment, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Time != nil {
		set["time"] = *upd.Time
	}
	if upd.ConsultationType != nil {
		set["consultationType"] = *upd.ConsultationType
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Appointment
	err := s.appointments().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&a)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id models.ID) (*models.Appointment, error) {
	var a models.Appointment
	err := s.appointments().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&a)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ----- workbooks -----

func (s *Store) ListWorkbooks(ctx context.Context) ([]models.Workbook, error) {
	return s.findWorkbooks(ctx, bson.M{})
}

func (s *Store) ListWorkbooksByUser(ctx context.Context, userID models.ID) ([]models.Workbook, error) {
	return s.findWorkbooks(ctx, bson.M{"assignedTo": userID})
}

func (s *Store) findWorkbooks(ctx context.Context, filter bson.M) ([]models.Workbook, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.workbooks().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]models.Workbook, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetWorkbook(ctx context.Context, id models.ID) (*models.Workbook, error) {
	var w models.Workbook
	err := s.workbooks().FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) CreateWorkbook(ctx context.Context, w *models.Workbook) (*models.Workbook, error) {
	now := time.Now()
	created := *w
	created.ID = newID()
	if created.Status == "" {
		created.Status = models.WorkbookAssigned
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	if _, err := s.workbooks().InsertOne(ctx, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) UpdateWorkbook(ctx context.Context, id models.ID, upd store.WorkbookUpdate) (*models.Workbook, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.UserResponse != nil {
		set["userResponse"] = *upd.UserResponse
	}
	if upd.AdminFeedback != nil {
		set["adminFeedback"] = *upd.AdminFeedback
	}
	if upd.Questions != nil {
		set["questions"] = *upd.Questions
	}
	return s.findWorkbookAndUpdate(ctx, id, set)
}

// AssignWorkbook forces the status back to assigned no matter what state the
// workbook was in.
func (s *Store) AssignWorkbook(ctx context.Context, workbookID, userID models.ID) (*models.Workbook, error) {
	set := bson.M{
		"assignedTo": userID,
		"status":     models.WorkbookAssigned,
		"updatedAt":  time.Now(),
	}
	return s.findWorkbookAndUpdate(ctx, workbookID, set)
}

func (s *Store) findWorkbookAndUpdate(ctx context.Context, id models.ID, set bson.M) (*models.Workbook, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var w models.Workbook
	err := s.workbooks().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&w)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) DeleteWorkbook(ctx context.Context, id models.ID) (*models.Workbook, error) {
	var w models.Workbook
	err := s.workbooks().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&w)
	if absent(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

var _ store.Store = (*Store)(nil)
