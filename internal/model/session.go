package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Session is the persisted state of one quiz attempt. Answers are the source of truth;
// DriverScores, TotalScore and PatternKey are a cache refreshed on every change.
type Session struct {
	ID                 string        `json:"id" bson:"_id"`
	BankVersion        string        `json:"bankVersion" bson:"bankVersion"`
	Status             SessionStatus `json:"status" bson:"status"`
	Answers            AnswerSet     `json:"answers" bson:"answers"`
	DriverScores       DriverScores  `json:"driverScores" bson:"driverScores"`
	TotalScore         int           `json:"totalScore" bson:"totalScore"`
	PatternKey         Pattern       `json:"patternKey,omitempty" bson:"patternKey,omitempty"`
	Completed          bool          `json:"completed" bson:"completed"`
	BirthDate          string        `json:"birthDate,omitempty" bson:"birthDate,omitempty"`
	RelationshipStatus string        `json:"relationshipStatus,omitempty" bson:"relationshipStatus,omitempty"`
	CreatedAt          time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt" bson:"updatedAt"`
	CompletedAt        *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// SessionStartResponse is returned when a quiz attempt begins
type SessionStartResponse struct {
	SessionID   string `json:"sessionId"`
	Token       string `json:"token"`
	BankVersion string `json:"bankVersion"`
	Total       int    `json:"total"`
}

// AnswerRequest carries one answer. Option is used by scored and choice questions,
// Text by the birth date question.
type AnswerRequest struct {
	Option *int   `json:"option,omitempty"`
	Text   string `json:"text,omitempty"`
}
