package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// submissionNamespace scopes derived submission ids.
var submissionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("edututor:submission"))

// Submission is a student's response to an assessment. Grading operates on
// a value copy; a submission is never mutated once grading begins.
// Answers holds structured responses keyed by question id.
type Submission struct {
	ID           string            `json:"id" yaml:"id"`
	StudentID    string            `json:"student_id" yaml:"student_id"`
	AssessmentID string            `json:"assessment_id" yaml:"assessment_id"`
	Text         string            `json:"text" yaml:"text"`
	Answers      map[string]string `json:"answers,omitempty" yaml:"answers"`
	WordCount    int               `json:"word_count" yaml:"word_count"`
	SubmittedAt  time.Time         `json:"submitted_at" yaml:"submitted_at"`
}

// HasResponse reports whether the submission carries text or at least one
// non-blank answer.
func (s *Submission) HasResponse() bool {
	if strings.TrimSpace(s.Text) != "" {
		return true
	}
	for _, a := range s.Answers {
		if strings.TrimSpace(a) != "" {
			return true
		}
	}
	return false
}

// SubmissionID returns the submission id, deriving a stable UUIDv5 from
// student, assessment and submission time when none was assigned.
func (s *Submission) SubmissionID() string {
	if s.ID != "" {
		return s.ID
	}
	key := s.StudentID + "|" + s.AssessmentID + "|" + s.SubmittedAt.UTC().Format(time.RFC3339Nano)
	return uuid.NewSHA1(submissionNamespace, []byte(key)).String()
}

// Words returns the declared word count, or counts the text when the
// declared value is missing.
func (s *Submission) Words() int {
	if s.WordCount > 0 {
		return s.WordCount
	}
	return len(strings.Fields(s.Text))
}
