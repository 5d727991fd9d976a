package store

import (
	"errors"

	"github.com/shrimpsizemoose/gradebook/internal/models"
)

// ErrNoData is returned when the grade log has not been created yet.
var ErrNoData = errors.New("grade log does not exist")

// GradeLog is an append-only table of student records.
type GradeLog interface {
	Close() error
	Path() string

	Append(rec *models.StudentRecord) error
	Rows() ([][]string, error)
	Exists() (bool, error)
	Clear() error
}
