package models

import "time"

type WorkbookStatus string

const (
	WorkbookAssigned   WorkbookStatus = "assigned"
	WorkbookInProgress WorkbookStatus = "in_progress"
	WorkbookSubmitted  WorkbookStatus = "submitted"
	WorkbookReviewed   WorkbookStatus = "reviewed"
)

type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multipleChoice"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionScale          QuestionType = "scale"
	QuestionDropdown       QuestionType = "dropdown"
)

// NeedsOptions reports whether the question type is choice-like and therefore
// must carry a non-empty option list.
func (t QuestionType) NeedsOptions() bool {
	switch t {
	case QuestionMultipleChoice, QuestionCheckbox, QuestionDropdown:
		return true
	}
	return false
}

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// Question is owned by its workbook; its ID is only unique within the parent.
type Question struct {
	ID         string       `bson:"id" json:"id"`
	Type       QuestionType `bson:"type" json:"type"`
	Text       string       `bson:"text" json:"text"`
	Required   bool         `bson:"required" json:"required"`
	Options    []Option     `bson:"options,omitempty" json:"options,omitempty"`
	UserAnswer []string     `bson:"userAnswer,omitempty" json:"userAnswer,omitempty"`
}

// Workbook is a self-guided exercise an admin assigns to a user. An empty
// AssignedTo means the workbook is available for assignment.
type Workbook struct {
	ID            ID             `bson:"_id,omitempty" json:"id"`
	Title         string         `bson:"title" json:"title"`
	Description   string         `bson:"description" json:"description"`
	Content       string         `bson:"content" json:"content"`
	Questions     []Question     `bson:"questions" json:"questions"`
	Status        WorkbookStatus `bson:"status" json:"status"`
	AssignedTo    ID             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	UserResponse  string         `bson:"userResponse,omitempty" json:"userResponse,omitempty"`
	AdminFeedback string         `bson:"adminFeedback,omitempty" json:"adminFeedback,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}
