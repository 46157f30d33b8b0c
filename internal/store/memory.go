package store

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/stillpoint/practice-api/internal/models"
)

// MockPassword is the single credential every seeded account accepts. It is
// insecure on purpose: the in-memory store exists for development and demos.
const MockPassword = "password123"

// MemoryStore holds all collections in process memory, seeded with sample
// data at construction. State is lost on restart. The source design had no
// isolation between callers at all; the RWMutex here is an intentional
// upgrade so the store survives concurrent HTTP handlers, but semantics stay
// last-write-wins with no version checks.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []models.User
	appointments []models.Appointment
	workbooks    []models.Workbook
	rng          *rand.Rand
}

// NewMemoryStore builds a seeded store. seed drives question generation only
// (structural fields of the sample data are fixed); pass 0 to seed from the
// clock, or a fixed value for reproducible question sets in tests.
func NewMemoryStore(seed int64, workbookCount, appointmentCount int) *MemoryStore {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &MemoryStore{rng: rand.New(rand.NewSource(seed))}
	s.users = seedUsers()
	s.appointments = seedAppointments()
	s.appointments = append(s.appointments, s.generateAppointments(appointmentCount)...)
	s.workbooks = s.generateWorkbooks(workbookCount)
	return s
}

var _ Store = (*MemoryStore)(nil)

// ----- users -----

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id models.ID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i].Sanitized()
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser appends a user with the next sequential id. The mock store keeps
// the universal placeholder credential regardless of what the caller hashed,
// so freshly registered accounts log in the same way the seeded ones do.
func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	created := *u
	created.ID = models.ID(strconv.Itoa(len(s.users) + 1))
	created.Password = MockPassword
	if created.Role == "" {
		created.Role = models.RoleUser
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	s.users = append(s.users, created)
	return &created, nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, id models.ID, upd UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if upd.Name != nil {
			s.users[i].Name = *upd.Name
		}
		if upd.Phone != nil {
			s.users[i].Phone = *upd.Phone
		}
		s.users[i].UpdatedAt = time.Now()
		u := s.users[i].Sanitized()
		return &u, nil
	}
	return nil, nil
}

// ----- appointments -----

func (s *MemoryStore) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out, nil
}

func (s *MemoryStore) ListAppointmentsByUser(_ context.Context, userID models.ID) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, 0)
	for i := range s.appointments {
		if s.appointments[i].UserID == userID {
			out = append(out, s.appointments[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) GetAppointment(_ context.Context, id models.ID) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			a := s.appointments[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateAppointment(_ context.Context, a *models.Appointment) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	created := *a
	created.ID = models.ID(strconv.Itoa(len(s.appointments) + 1))
	if created.Status == "" {
		created.Status = models.AppointmentPending
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	s.appointments = append(s.appointments, created)
	return &created, nil
}

func (s *MemoryStore) UpdateAppointment(_ context.Context, id models.ID, upd AppointmentUpdate) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}
		if upd.Date != nil {
			s.appointments[i].Date = *upd.Date
		}
		if upd.Time != nil {
			s.appointments[i].Time = *upd.Time
		}
		if upd.ConsultationType != nil {
			s.appointments[i].ConsultationType = *upd.ConsultationType
		}
		if upd.Status != nil {
			// Transitions are unconstrained: any status may replace any other.
			s.appointments[i].Status = *upd.Status
		}
		s.appointments[i].UpdatedAt = time.Now()
		a := s.appointments[i]
		return &a, nil
	}
	return nil, nil
}

func (s *MemoryStore) DeleteAppointment(_ context.Context, id models.ID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			removed := s.appointments[i]
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return &removed, nil
		}
	}
	return nil, nil
}

// ----- workbooks -----

func (s *MemoryStore) ListWorkbooks(_ context.Context) ([]models.Workbook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Workbook, 0, len(s.workbooks))
	for i := range s.workbooks {
		out = append(out, cloneWorkbook(s.workbooks[i]))
	}
	return out, nil
}

func (s *MemoryStore) ListWorkbooksByUser(_ context.Context, userID models.ID) ([]models.Workbook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Workbook, 0)
	for i := range s.workbooks {
		if s.workbooks[i].AssignedTo == userID {
			out = append(out, cloneWorkbook(s.workbooks[i]))
		}
	}
	return out, nil
}

func (s *MemoryStore) GetWorkbook(_ context.Context, id models.ID) (*models.Workbook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.workbooks {
		if s.workbooks[i].ID == id {
			w := cloneWorkbook(s.workbooks[i])
			return &w, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateWorkbook(_ context.Context, w *models.Workbook) (*models.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	created := cloneWorkbook(*w)
	created.ID = models.ID(strconv.Itoa(len(s.workbooks) + 1))
	if created.Status == "" {
		created.Status = models.WorkbookAssigned
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	s.workbooks = append(s.workbooks, created)
	out := cloneWorkbook(created)
	return &out, nil
}

func (s *MemoryStore) UpdateWorkbook(_ context.Context, id models.ID, upd WorkbookUpdate) (*models.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workbooks {
		if s.workbooks[i].ID != id {
			continue
		}
		if upd.Title != nil {
			s.workbooks[i].Title = *upd.Title
		}
		if upd.Description != nil {
			s.workbooks[i].Description = *upd.Description
		}
		if upd.Content != nil {
			s.workbooks[i].Content = *upd.Content
		}
		if upd.Status != nil {
			s.workbooks[i].Status = *upd.Status
		}
		if upd.UserResponse != nil {
			s.workbooks[i].UserResponse = *upd.UserResponse
		}
		if upd.AdminFeedback != nil {
			s.workbooks[i].AdminFeedback = *upd.AdminFeedback
		}
		if upd.Questions != nil {
			s.workbooks[i].Questions = cloneQuestions(*upd.Questions)
		}
		s.workbooks[i].UpdatedAt = time.Now()
		w := cloneWorkbook(s.workbooks[i])
		return &w, nil
	}
	return nil, nil
}

func (s *MemoryStore) DeleteWorkbook(_ context.Context, id models.ID) (*models.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workbooks {
		if s.workbooks[i].ID == id {
			removed := cloneWorkbook(s.workbooks[i])
			s.workbooks = append(s.workbooks[:i], s.workbooks[i+1:]...)
			return &removed, nil
		}
	}
	return nil, nil
}

// AssignWorkbook hands a workbook to a user. (Re)assignment always resets the
// status to assigned, discarding any progress state the workbook had.
func (s *MemoryStore) AssignWorkbook(_ context.Context, workbookID, userID models.ID) (*models.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workbooks {
		if s.workbooks[i].ID == workbookID {
			s.workbooks[i].AssignedTo = userID
			s.workbooks[i].Status = models.WorkbookAssigned
			s.workbooks[i].UpdatedAt = time.Now()
			w := cloneWorkbook(s.workbooks[i])
			return &w, nil
		}
	}
	return nil, nil
}

// cloneWorkbook deep-copies the embedded question slices so callers never
// share memory with the store.
func cloneWorkbook(w models.Workbook) models.Workbook {
	w.Questions = cloneQuestions(w.Questions)
	return w
}

func cloneQuestions(qs []models.Question) []models.Question {
	if qs == nil {
		return nil
	}
	out := make([]models.Question, len(qs))
	copy(out, qs)
	for i := range out {
		if out[i].Options != nil {
			opts := make([]models.Option, len(out[i].Options))
			copy(opts, out[i].Options)
			out[i].Options = opts
		}
		if out[i].UserAnswer != nil {
			ans := make([]string, len(out[i].UserAnswer))
			copy(ans, out[i].UserAnswer)
			out[i].UserAnswer = ans
		}
	}
	return out
}
