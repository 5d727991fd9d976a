package handlers

import (
	"context"
	"errors"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradebook/internal/app"
	"github.com/shrimpsizemoose/gradebook/internal/models"
	"github.com/shrimpsizemoose/gradebook/internal/scoring"
	"github.com/shrimpsizemoose/gradebook/internal/store"
)

// Message is the status line shown to the user.
type Message struct {
	Text string
	OK   bool
}

func success(text string) Message {
	return Message{Text: text, OK: true}
}

func failure(text string) Message {
	return Message{Text: text}
}

type SubmitRequest struct {
	Student string
	Scores  []string
}

type SubmitResponse struct {
	Summary *app.Summary
	Message Message
}

type ViewResponse struct {
	Rows    [][]string
	Message Message
}

// GradeHandler turns shell requests into service calls. Input and auth
// problems come back as failed messages; only storage faults are returned as errors.
type GradeHandler struct {
	service *app.Service
}

func NewGradeHandler(service *app.Service) *GradeHandler {
	return &GradeHandler{
		service: service,
	}
}

func (h *GradeHandler) HandleSubmit(req SubmitRequest) (*SubmitResponse, error) {
	sub, err := app.ParseSubmission(req.Student, req.Scores)
	if err != nil {
		logger.Debug.Printf("Rejected submission: %v", err)
		return &SubmitResponse{Message: failure(inputMessage(err))}, nil
	}

	summary, err := h.service.Submit(sub)
	if err != nil {
		logger.Error.Printf("Failed to record submission: %v", err)
		return nil, err
	}

	return &SubmitResponse{
		Summary: summary,
		Message: success(summary.String()),
	}, nil
}

func (h *GradeHandler) HandleView(ctx context.Context, secret string) (Message, error) {
	err := h.service.View(ctx, secret)
	switch {
	case err == nil:
		return success(""), nil
	case errors.Is(err, app.ErrAccessDenied):
		return failure("Incorrect password. Access denied."), nil
	case errors.Is(err, store.ErrNoData):
		return failure("No data to display."), nil
	default:
		logger.Error.Printf("Failed to view grade log: %v", err)
		return Message{}, err
	}
}

// HandleDump returns the log contents instead of launching a viewer.
func (h *GradeHandler) HandleDump(ctx context.Context, secret string) (*ViewResponse, error) {
	rows, err := h.service.Rows(ctx, secret)
	switch {
	case err == nil:
		return &ViewResponse{Rows: rows, Message: success("")}, nil
	case errors.Is(err, app.ErrAccessDenied):
		return &ViewResponse{Message: failure("Incorrect password. Access denied.")}, nil
	case errors.Is(err, store.ErrNoData):
		return &ViewResponse{Message: failure("No data to display.")}, nil
	default:
		logger.Error.Printf("Failed to read grade log: %v", err)
		return nil, err
	}
}

func (h *GradeHandler) HandleClear(ctx context.Context, secret string) (Message, error) {
	err := h.service.Clear(ctx, secret)
	switch {
	case err == nil:
		return success("Data cleared successfully."), nil
	case errors.Is(err, app.ErrAccessDenied):
		return failure("Incorrect password. Access denied."), nil
	case errors.Is(err, store.ErrNoData):
		return failure("No data to clear."), nil
	default:
		logger.Error.Printf("Failed to clear grade log: %v", err)
		return Message{}, err
	}
}

// HandleGrade classifies scores against maxScore without recording them.
func (h *GradeHandler) HandleGrade(fields []string, maxScore int) ([]models.Grade, Message) {
	scores, err := app.ParseScores(fields)
	if err != nil {
		return nil, failure(inputMessage(err))
	}
	if len(scores) == 0 {
		return nil, failure("Enter at least one test score.")
	}

	grades := make([]models.Grade, len(scores))
	for i, score := range scores {
		grades[i] = scoring.Classify(score, maxScore)
	}
	return grades, success("")
}

func inputMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrEmptyName):
		return "Student name cannot be empty."
	case errors.Is(err, app.ErrMissingScore):
		return "Please fill in all score fields."
	case errors.Is(err, app.ErrInvalidScore):
		return "All test scores must be valid integers."
	default:
		return "Enter between 1 and 4 test scores."
	}
}
