package models

// Grade is an ordinal letter grade, best first.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

func (g Grade) String() string {
	return string(g)
}
