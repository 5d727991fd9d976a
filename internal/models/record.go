package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxTests is the number of score columns in the header.
	MaxTests = 4
	// NotApplicable marks an empty score slot in the serialized row.
	NotApplicable = "NA"
)

var validate = validator.New()

// Slot holds either a value or nothing. Empty slots serialize as NotApplicable.
type Slot[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Slot[T] {
	return Slot[T]{Value: v, Valid: true}
}

func None[T any]() Slot[T] {
	return Slot[T]{}
}

func (s Slot[T]) String() string {
	if !s.Valid {
		return NotApplicable
	}
	return fmt.Sprint(s.Value)
}

// Pad wraps values into slots and appends empty ones up to width.
// Longer inputs are kept whole.
func Pad[T any](values []T, width int) []Slot[T] {
	n := len(values)
	if n < width {
		n = width
	}
	slots := make([]Slot[T], 0, n)
	for _, v := range values {
		slots = append(slots, Some(v))
	}
	for len(slots) < width {
		slots = append(slots, None[T]())
	}
	return slots
}

// StudentRecord is one row of the grade log.
type StudentRecord struct {
	Student   string
	Scores    []Slot[int]
	Grades    []Slot[Grade]
	Average   float64
	BestGrade Grade `validate:"required,oneof=A B C D F"`
}

func (r *StudentRecord) Validate() error {
	return validate.Struct(r)
}

func (r *StudentRecord) AverageLabel() string {
	return fmt.Sprintf("Avg: %.2f", r.Average)
}

// Fields returns the serialized row: name, score slots, average label, best grade.
func (r *StudentRecord) Fields() []string {
	fields := make([]string, 0, len(r.Scores)+3)
	fields = append(fields, r.Student)
	for _, s := range r.Scores {
		fields = append(fields, s.String())
	}
	return append(fields, r.AverageLabel(), r.BestGrade.String())
}

func (r *StudentRecord) String() string {
	return strings.Join(r.Fields(), ",")
}

// Header is the first row of a freshly created grade log.
func Header() []string {
	h := []string{"Student Name"}
	for i := 1; i <= MaxTests; i++ {
		h = append(h, fmt.Sprintf("Test %d", i))
	}
	return append(h, "Average", "Best Grade")
}

// Submission is the validated input collected by the shell.
type Submission struct {
	Student string `validate:"required"`
	Scores  []int  `validate:"min=1,max=4,dive,min=0"`
}

func (s *Submission) Validate() error {
	return validate.Struct(s)
}
