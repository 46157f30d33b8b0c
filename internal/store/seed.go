package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stillpoint/practice-api/internal/models"
)

// Default seed volumes, matching the demo dataset the dashboards expect.
const (
	DefaultWorkbookCount    = 40
	DefaultAppointmentCount = 20
)

var workbookTitles = []string{
	"Managing Daily Stress",
	"Sleep and Recovery",
	"Mindful Breathing Practice",
	"Cognitive Reframing",
	"Building Healthy Routines",
	"Pain Journal and Pacing",
	"Goal Setting for Recovery",
	"Emotional Awareness Check-in",
}

var questionPrompts = []string{
	"How often did you practice this exercise over the past week?",
	"Describe a situation where you noticed tension building up.",
	"Rate your overall energy level today.",
	"Which coping strategies did you find most helpful?",
	"What would you like to focus on in your next session?",
	"How well did you sleep on average this week?",
	"List any triggers you became aware of.",
	"How confident do you feel applying this technique on your own?",
}

// The fixed month the generated workbooks are stamped into; only the day of
// month varies with the index.
var seedMonth = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func seedUsers() []models.User {
	mk := func(id, name, email string, role models.Role, day int) models.User {
		at := seedMonth.AddDate(0, 0, day-1)
		return models.User{
			ID:        models.ID(id),
			Name:      name,
			Email:     email,
			Password:  MockPassword,
			Role:      role,
			CreatedAt: at,
			UpdatedAt: at,
		}
	}
	return []models.User{
		mk("1", "Sarah Mitchell", "sarah@stillpoint.example", models.RoleAdmin, 1),
		mk("2", "James Carter", "james.carter@example.com", models.RoleUser, 2),
		mk("3", "Priya Nair", "priya.nair@example.com", models.RoleUser, 3),
		mk("4", "Daniel Brooks", "daniel.brooks@example.com", models.RoleUser, 4),
		mk("5", "Elena Petrova", "elena.petrova@example.com", models.RoleUser, 5),
	}
}

func seedAppointments() []models.Appointment {
	return []models.Appointment{
		{
			ID:               "1",
			UserID:           "2",
			UserName:         "James Carter",
			UserEmail:        "james.carter@example.com",
			Date:             time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
			Time:             "10:30 AM",
			ConsultationType: models.ConsultationGeneral,
			Status:           models.AppointmentConfirmed,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		},
		{
			ID:               "2",
			UserID:           "3",
			UserName:         "Priya Nair",
			UserEmail:        "priya.nair@example.com",
			Date:             time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
			Time:             "02:00 PM",
			ConsultationType: models.ConsultationRehabilitation,
			Status:           models.AppointmentPending,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		},
	}
}

var appointmentSlots = []string{
	"09:00 AM", "10:30 AM", "12:00 PM", "02:00 PM", "03:30 PM", "05:00 PM",
}

var consultationTypes = []models.ConsultationType{
	models.ConsultationGeneral,
	models.ConsultationSports,
	models.ConsultationRehabilitation,
	models.ConsultationChronic,
}

var appointmentStatuses = []models.AppointmentStatus{
	models.AppointmentPending,
	models.AppointmentConfirmed,
	models.AppointmentCompleted,
	models.AppointmentCancelled,
}

// seedUserID picks the owning user for sample record i by a modulo priority
// chain over the five fixed accounts.
func seedUserID(i int) models.ID {
	switch {
	case i%5 == 0:
		return "5"
	case i%4 == 0:
		return "4"
	case i%3 == 0:
		return "3"
	case i%2 == 0:
		return "2"
	default:
		return "1"
	}
}

// generateAppointments produces count future-dated demo appointments. Ids
// continue after the literal seed records.
func (s *MemoryStore) generateAppointments(count int) []models.Appointment {
	byID := map[models.ID]models.User{}
	for _, u := range seedUsers() {
		byID[u.ID] = u
	}
	base := len(s.appointments)
	out := make([]models.Appointment, 0, count)
	for i := 1; i <= count; i++ {
		owner := byID[seedUserID(i)]
		now := time.Now()
		out = append(out, models.Appointment{
			ID:               models.ID(strconv.Itoa(base + i)),
			UserID:           owner.ID,
			UserName:         owner.Name,
			UserEmail:        owner.Email,
			Date:             now.AddDate(0, 0, i).Format("2006-01-02"),
			Time:             appointmentSlots[i%len(appointmentSlots)],
			ConsultationType: consultationTypes[i%len(consultationTypes)],
			Status:           appointmentStatuses[i%len(appointmentStatuses)],
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	return out
}

// workbookStatus maps index ranges to a fixed status distribution so the
// admin dashboard always shows every lifecycle stage.
func workbookStatus(i int) models.WorkbookStatus {
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

// workbookAssignee distributes workbooks over the sample users; indexes that
// match none of the moduli stay unassigned.
func workbookAssignee(i int) models.ID {
	switch {
	case i%5 == 0:
		return "5"
	case i%3 == 0:
		return "3"
	case i%2 == 0:
		return "2"
	default:
		return ""
	}
}

// generateWorkbooks builds count sample workbooks. Structural fields (status,
// assignee, timestamps) are a pure function of the index; question contents
// come from the store's random source.
func (s *MemoryStore) generateWorkbooks(count int) []models.Workbook {
	out := make([]models.Workbook, 0, count)
	for i := 1; i <= count; i++ {
		title := workbookTitles[i%len(workbookTitles)]
		at := seedMonth.AddDate(0, 0, i%30)
		out = append(out, models.Workbook{
			ID:          models.ID(strconv.Itoa(i)),
			Title:       fmt.Sprintf("%s (Week %d)", title, i),
			Description: fmt.Sprintf("Guided exercises for %q.", title),
			Content:     "Work through each section at your own pace and answer every required question.",
			Questions:   s.generateQuestions(),
			Status:      workbookStatus(i),
			AssignedTo:  workbookAssignee(i),
			CreatedAt:   at,
			UpdatedAt:   at,
		})
	}
	return out
}

var questionTypes = []models.QuestionType{
	models.QuestionText,
	models.QuestionMultipleChoice,
	models.QuestionCheckbox,
	models.QuestionScale,
	models.QuestionDropdown,
}

// generateQuestions returns 5 to 10 questions of randomly picked types.
// Choice-like questions get 3 to 5 options; the others carry none.
func (s *MemoryStore) generateQuestions() []models.Question {
	n := 5 + s.rng.Intn(6)
	qs := make([]models.Question, 0, n)
	for i := 1; i <= n; i++ {
		qt := questionTypes[s.rng.Intn(len(questionTypes))]
		q := models.Question{
			ID:       fmt.Sprintf("q%d", i),
			Type:     qt,
			Text:     questionPrompts[s.rng.Intn(len(questionPrompts))],
			Required: s.rng.Intn(2) == 0,
		}
		if qt.NeedsOptions() {
			optCount := 3 + s.rng.Intn(3)
			for j := 1; j <= optCount; j++ {
				q.Options = append(q.Options, models.Option{
					ID:   fmt.Sprintf("o%d", j),
					Text: fmt.Sprintf("Option %d", j),
				})
			}
		}
		qs = append(qs, q)
	}
	return qs
}
