package models

// Choice types documented for ResponseEntry.ChoiceType. Any non-blank value is accepted.
const (
	ChoiceCorrect = "correct"
	ChoiceNeutral = "neutral"
	ChoiceWrong   = "wrong"
)

// AssessmentSubmission is the record persisted for every accepted submission.
// Field order here is the field order of the stored and relayed JSON.
type AssessmentSubmission struct {
	StudentName string          `json:"studentName"`
	SchoolName  string          `json:"schoolName"`
	GradeYear   string          `json:"gradeYear"`
	FinalScore  int             `json:"finalScore"`
	SentAt      string          `json:"sentAt"`
	Responses   []ResponseEntry `json:"responses"`
}

// ResponseEntry records the choice made for a single question.
type ResponseEntry struct {
	QuestionID string `json:"questionId"`
	ChoiceType string `json:"choiceType"`
}
