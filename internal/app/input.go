package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/gradebook/internal/models"
)

var (
	ErrEmptyName         = errors.New("student name cannot be empty")
	ErrMissingScore      = errors.New("please fill in all score fields")
	ErrInvalidScore      = errors.New("all test scores must be valid integers")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrAccessDenied      = errors.New("incorrect password, access denied")
)

// ParseSubmission turns raw form fields into a validated submission.
func ParseSubmission(student string, fields []string) (*models.Submission, error) {
	student = strings.TrimSpace(student)
	if student == "" {
		return nil, ErrEmptyName
	}

	scores, err := ParseScores(fields)
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{Student: student, Scores: scores}
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	return sub, nil
}

// ParseScores accepts non-negative decimal integers only.
func ParseScores(fields []string) ([]int, error) {
	scores := make([]int, 0, len(fields))
	for _, field := range fields {
		score, err := parseScore(field)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

func parseScore(field string) (int, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, ErrMissingScore
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidScore, field)
		}
	}

	score, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, field)
	}
	return score, nil
}
