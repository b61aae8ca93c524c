package service

import (
	"strings"
	"time"
	"unicode"
)

const (
	fileTimestampLayout = "20060102_150405"
	placeholderName     = "Aluno"
)

// SanitizeStudentName keeps letters, digits, underscores, hyphens and spaces.
// A result that is blank falls back to a fixed placeholder.
func SanitizeStudentName(name string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ' ' {
			return r
		}
		return -1
	}, name)

	if strings.TrimSpace(safe) == "" {
		return placeholderName
	}
	return safe
}

// SubmissionFilename builds "{YYYYMMDD_HHMMSS}_{sanitized name}.json" using the UTC time of at.
// Two submissions for the same name within the same second share a filename.
func SubmissionFilename(at time.Time, studentName string) string {
	return at.UTC().Format(fileTimestampLayout) + "_" + SanitizeStudentName(studentName) + ".json"
}
