// internal/scoring/grader.go
package scoring

import (
	"github.com/shrimpsizemoose/gradebook/internal/models"
)

// DefaultMaxScore is the ceiling every stored grade is measured against.
const DefaultMaxScore = 100

// Classify maps score to a letter grade using ten-point steps below maxScore.
func Classify(score, maxScore int) models.Grade {
	switch {
	case score >= maxScore-10:
		return models.GradeA
	case score >= maxScore-20:
		return models.GradeB
	case score >= maxScore-30:
		return models.GradeC
	case score >= maxScore-40:
		return models.GradeD
	default:
		return models.GradeF
	}
}

func ClassifyBatch(scores []int) []models.Grade {
	grades := make([]models.Grade, len(scores))
	for i, s := range scores {
		grades[i] = Classify(s, DefaultMaxScore)
	}
	return grades
}
