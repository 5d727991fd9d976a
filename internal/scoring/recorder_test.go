package scoring

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/gradebook/internal/models"
	"github.com/shrimpsizemoose/gradebook/internal/store"
	"github.com/shrimpsizemoose/gradebook/internal/store/csvlog"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) Path() string {
	return "mock.csv"
}

func (m *MockStore) Append(rec *models.StudentRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockStore) Rows() ([][]string, error) {
	return nil, nil
}

func (m *MockStore) Exists() (bool, error) {
	return false, nil
}

func (m *MockStore) Clear() error {
	return nil
}

func TestBuildRecord(t *testing.T) {
	testCases := []struct {
		name      string
		scores    []int
		grades    []models.Grade
		fields    []string
		bestGrade models.Grade
	}{
		{
			name:      "two scores padded",
			scores:    []int{95, 85},
			grades:    []models.Grade{models.GradeA, models.GradeB},
			fields:    []string{"John Doe", "95", "85", "NA", "NA", "Avg: 90.00", "A"},
			bestGrade: models.GradeA,
		},
		{
			name:      "no scores",
			scores:    nil,
			grades:    nil,
			fields:    []string{"John Doe", "NA", "NA", "NA", "NA", "Avg: 0.00", "F"},
			bestGrade: models.GradeF,
		},
		{
			name:      "four scores",
			scores:    []int{70, 80, 90, 61},
			grades:    []models.Grade{models.GradeC, models.GradeB, models.GradeA, models.GradeD},
			fields:    []string{"John Doe", "70", "80", "90", "61", "Avg: 75.25", "A"},
			bestGrade: models.GradeA,
		},
		{
			name:      "more than four scores grows the row",
			scores:    []int{10, 20, 30, 40, 50},
			grades:    nil,
			fields:    []string{"John Doe", "10", "20", "30", "40", "50", "Avg: 30.00", "F"},
			bestGrade: models.GradeF,
		},
		{
			name:   "scores near MaxInt do not overflow the average",
			scores: []int{math.MaxInt64, math.MaxInt64},
			fields: []string{
				"John Doe", "9223372036854775807", "9223372036854775807", "NA", "NA",
				"Avg: 9223372036854775808.00", "A",
			},
			bestGrade: models.GradeA,
		},
		{
			name:      "repeating average is rounded",
			scores:    []int{100, 100, 99},
			fields:    []string{"John Doe", "100", "100", "99", "NA", "Avg: 99.67", "A"},
			bestGrade: models.GradeA,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := BuildRecord("John Doe", tc.scores, tc.grades)
			assert.Equal(t, tc.fields, rec.Fields())
			assert.Equal(t, tc.bestGrade, rec.BestGrade)
			assert.GreaterOrEqual(t, len(rec.Grades), models.MaxTests)
		})
	}
}

func TestBuildRecord_GradesPaddedIndependently(t *testing.T) {
	rec := BuildRecord("Ann", []int{95}, []models.Grade{models.GradeA, models.GradeB, models.GradeC})

	require.Len(t, rec.Grades, 4)
	assert.Equal(t, models.Some(models.GradeC), rec.Grades[2])
	assert.False(t, rec.Grades[3].Valid)
	assert.Len(t, rec.Fields(), 7)
}

func TestRecorder_Record(t *testing.T) {
	t.Run("appends built record", func(t *testing.T) {
		s := new(MockStore)
		s.On("Append", mock.MatchedBy(func(rec *models.StudentRecord) bool {
			return rec.Student == "Alice" && rec.AverageLabel() == "Avg: 95.00"
		})).Return(nil).Once()

		err := NewRecorder(s).Record("Alice", []int{100, 90}, []models.Grade{models.GradeA, models.GradeA})
		assert.NoError(t, err)
		s.AssertExpectations(t)
	})

	t.Run("storage fault propagates", func(t *testing.T) {
		fault := errors.New("disk full")
		s := new(MockStore)
		s.On("Append", mock.Anything).Return(fault).Once()

		err := NewRecorder(s).Record("Bob", []int{70}, nil)
		assert.ErrorIs(t, err, fault)
		s.AssertExpectations(t)
	})
}

func newCSVRecorder(t *testing.T) (*Recorder, string) {
	path := filepath.Join(t.TempDir(), "data.csv")
	s, err := csvlog.NewCSVStore(&store.LogConfig{Path: path})
	require.NoError(t, err)
	return NewRecorder(s), path
}

func readLines(t *testing.T, path string) []string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRecorder_WritesGradeLog(t *testing.T) {
	t.Run("single record on empty log", func(t *testing.T) {
		r, path := newCSVRecorder(t)

		err := r.Record("John Doe", []int{95, 85}, []models.Grade{models.GradeA, models.GradeB})
		require.NoError(t, err)

		lines := readLines(t, path)
		require.Len(t, lines, 2)
		assert.Equal(t, "Student Name,Test 1,Test 2,Test 3,Test 4,Average,Best Grade", lines[0])
		assert.Equal(t, "John Doe,95,85,NA,NA,Avg: 90.00,A", lines[1])
	})

	t.Run("sequential records share one header", func(t *testing.T) {
		r, path := newCSVRecorder(t)

		require.NoError(t, r.Record("Alice", []int{100, 90}, []models.Grade{models.GradeA, models.GradeB}))
		require.NoError(t, r.Record("Bob", []int{70, 80}, []models.Grade{models.GradeC, models.GradeB}))

		lines := readLines(t, path)
		require.Len(t, lines, 3)
		assert.Equal(t, "Student Name,Test 1,Test 2,Test 3,Test 4,Average,Best Grade", lines[0])
		assert.Equal(t, "Alice,100,90,NA,NA,Avg: 95.00,A", lines[1])
		assert.Equal(t, "Bob,70,80,NA,NA,Avg: 75.00,B", lines[2])
	})

	t.Run("empty scores", func(t *testing.T) {
		r, path := newCSVRecorder(t)

		require.NoError(t, r.Record("Nobody", nil, nil))

		lines := readLines(t, path)
		assert.Equal(t, "Nobody,NA,NA,NA,NA,Avg: 0.00,F", lines[1])
	})
}
