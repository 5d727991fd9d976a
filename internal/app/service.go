package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradebook/internal/metrics"
	"github.com/shrimpsizemoose/gradebook/internal/models"
	"github.com/shrimpsizemoose/gradebook/internal/scoring"
	"github.com/shrimpsizemoose/gradebook/internal/store"
)

type Service struct {
	Config   *Config
	Store    store.GradeLog
	Recorder *scoring.Recorder
	Gate     *Gate
	Viewer   Viewer
}

func NewService(ctx context.Context, config *Config) (*Service, error) {
	store, err := NewStore(config.Store.Path, config.Store.CRLF)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	gate, err := NewGateFromConfig(ctx, config)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to init admin gate: %w", err)
	}

	return &Service{
		Config:   config,
		Store:    store,
		Recorder: scoring.NewRecorder(store),
		Gate:     gate,
		Viewer:   NewCommandViewer(config.Viewer.Command, config.Viewer.Args...),
	}, nil
}

// Summary is what the shell shows after a submission. It is computed
// separately from the stored row.
type Summary struct {
	Student   string
	Scores    []int
	Grades    []models.Grade
	Average   float64
	BestGrade models.Grade
}

func (s *Summary) String() string {
	return fmt.Sprintf("Average Score: %.2f, Best Grade: %s", s.Average, s.BestGrade)
}

func (s *Service) Submit(sub *models.Submission) (*Summary, error) {
	grades := scoring.ClassifyBatch(sub.Scores)

	if err := s.Recorder.Record(sub.Student, sub.Scores, grades); err != nil {
		return nil, err
	}

	summary := &Summary{
		Student: sub.Student,
		Scores:  sub.Scores,
		Grades:  grades,
	}
	sum, best := 0.0, 0
	for i, score := range sub.Scores {
		sum += float64(score)
		if i == 0 || score > best {
			best = score
		}
		metrics.ScoreHistogram.Observe(float64(score))
	}
	if len(sub.Scores) > 0 {
		summary.Average = sum / float64(len(sub.Scores))
	}
	summary.BestGrade = scoring.Classify(best, scoring.DefaultMaxScore)
	metrics.RecordsTotal.WithLabelValues(summary.BestGrade.String()).Inc()

	return summary, nil
}

func (s *Service) authorize(ctx context.Context, action, secret string) error {
	err := s.Gate.Check(ctx, secret)
	switch {
	case err == nil:
		metrics.AdminActionsTotal.WithLabelValues(action, "granted").Inc()
	case errors.Is(err, ErrAccessDenied):
		logger.Info.Printf("Admin %s denied", action)
		metrics.AdminActionsTotal.WithLabelValues(action, "denied").Inc()
	default:
		metrics.AdminActionsTotal.WithLabelValues(action, "error").Inc()
	}
	return err
}

// View opens the grade log in the configured viewer.
func (s *Service) View(ctx context.Context, secret string) error {
	if err := s.authorize(ctx, "view", secret); err != nil {
		return err
	}

	exists, err := s.Store.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNoData
	}

	return s.Viewer.Open(ctx, s.Store.Path())
}

// Rows returns the grade log contents for printing without an external viewer.
func (s *Service) Rows(ctx context.Context, secret string) ([][]string, error) {
	if err := s.authorize(ctx, "view", secret); err != nil {
		return nil, err
	}
	return s.Store.Rows()
}

// Clear deletes the grade log entirely.
func (s *Service) Clear(ctx context.Context, secret string) error {
	if err := s.authorize(ctx, "clear", secret); err != nil {
		return err
	}
	return s.Store.Clear()
}

// FlushMetrics dumps counters to the configured textfile, if any.
func (s *Service) FlushMetrics() error {
	return metrics.WriteTextfile(s.Config.Metrics.Textfile)
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Gate.Close(); err != nil {
		errs = append(errs, fmt.Errorf("gate: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
