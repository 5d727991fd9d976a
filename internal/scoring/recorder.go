package scoring

import (
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradebook/internal/models"
	"github.com/shrimpsizemoose/gradebook/internal/store"
)

type Recorder struct {
	store store.GradeLog
}

func NewRecorder(store store.GradeLog) *Recorder {
	return &Recorder{store: store}
}

// BuildRecord derives the average and best grade for one submission.
// Only present score slots take part in the aggregates.
func BuildRecord(student string, scores []int, grades []models.Grade) *models.StudentRecord {
	rec := &models.StudentRecord{
		Student: student,
		Scores:  models.Pad(scores, models.MaxTests),
		Grades:  models.Pad(grades, models.MaxTests),
	}

	// summed as float64 so scores near MaxInt cannot overflow
	sum, count, best := 0.0, 0, 0
	for _, slot := range rec.Scores {
		if !slot.Valid {
			continue
		}
		if count == 0 || slot.Value > best {
			best = slot.Value
		}
		sum += float64(slot.Value)
		count++
	}

	if count > 0 {
		rec.Average = sum / float64(count)
	}
	rec.BestGrade = Classify(best, DefaultMaxScore)

	return rec
}

// Record appends one row for student to the grade log.
func (r *Recorder) Record(student string, scores []int, grades []models.Grade) error {
	rec := BuildRecord(student, scores, grades)

	if err := r.store.Append(rec); err != nil {
		return fmt.Errorf("failed to record scores for %q: %w", student, err)
	}

	logger.Debug.Printf("Recorded %s into %s", rec, r.store.Path())
	return nil
}
