package dto

import (
	"strings"

	"github.com/noah-isme/gema-assessment-intake/internal/models"
)

// AssessmentRequest is the JSON payload accepted by the intake endpoint.
type AssessmentRequest struct {
	StudentName string                    `json:"studentName" validate:"notblank"`
	SchoolName  string                    `json:"schoolName" validate:"notblank"`
	GradeYear   string                    `json:"gradeYear" validate:"notblank"`
	FinalScore  int                       `json:"finalScore"`
	SentAt      string                    `json:"sentAt"`
	Responses   []AssessmentResponseEntry `json:"responses" validate:"required,min=1,dive"`
}

// AssessmentResponseEntry is one answered question inside an AssessmentRequest.
type AssessmentResponseEntry struct {
	QuestionID string `json:"questionId" validate:"notblank"`
	ChoiceType string `json:"choiceType" validate:"notblank"`
}

// AssessmentAccepted is returned once a submission has been stored.
type AssessmentAccepted struct {
	OK   bool   `json:"ok"`
	File string `json:"file"`
}

// NewAssessmentSubmission converts a validated request into the persisted model.
// A blank SentAt is replaced by defaultSentAt.
func NewAssessmentSubmission(req AssessmentRequest, defaultSentAt string) models.AssessmentSubmission {
	sentAt := req.SentAt
	if strings.TrimSpace(sentAt) == "" {
		sentAt = defaultSentAt
	}

	responses := make([]models.ResponseEntry, 0, len(req.Responses))
	for _, entry := range req.Responses {
		responses = append(responses, models.ResponseEntry{
			QuestionID: entry.QuestionID,
			ChoiceType: entry.ChoiceType,
		})
	}

	return models.AssessmentSubmission{
		StudentName: req.StudentName,
		SchoolName:  req.SchoolName,
		GradeYear:   req.GradeYear,
		FinalScore:  req.FinalScore,
		SentAt:      sentAt,
		Responses:   responses,
	}
}
