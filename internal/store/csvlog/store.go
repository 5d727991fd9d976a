// internal/store/csvlog/store.go
package csvlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradebook/internal/models"
	"github.com/shrimpsizemoose/gradebook/internal/store"
)

type CSVStore struct {
	path string
	crlf bool
}

var _ store.GradeLog = (*CSVStore)(nil)

func NewCSVStore(config *store.LogConfig) (*CSVStore, error) {
	if config.Type != "" && config.Type != store.LogTypeCSV {
		return nil, fmt.Errorf("csv store cannot open a %q grade log", config.Type)
	}
	if config.Path == "" {
		return nil, fmt.Errorf("grade log path is empty")
	}

	path, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve grade log path %s: %w", config.Path, err)
	}

	return &CSVStore{path: path, crlf: config.CRLF}, nil
}

func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) Close() error {
	return nil
}

func (s *CSVStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat grade log: %w", err)
	}
	return true, nil
}

// Append writes rec as one row, preceded by the header if the file is new.
// The encoded bytes go out in a single write.
func (s *CSVStore) Append(rec *models.StudentRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	exists, err := s.Exists()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if !exists {
		s.writeRow(&buf, models.Header())
	}
	s.writeRow(&buf, rec.Fields())

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open grade log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append to grade log: %w", err)
	}
	if !exists {
		logger.Info.Printf("Created grade log at %s", s.path)
	}

	return f.Close()
}

// writeRow quotes a field only when it holds a comma, a quote or a line break,
// so leading and trailing spaces are written as is.
func (s *CSVStore) writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if strings.ContainsAny(field, ",\"\r\n") {
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			buf.WriteByte('"')
			continue
		}
		buf.WriteString(field)
	}
	if s.crlf {
		buf.WriteString("\r\n")
	} else {
		buf.WriteByte('\n')
	}
}

// Rows returns every row including the header.
func (s *CSVStore) Rows() ([][]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open grade log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read grade log: %w", err)
	}
	return rows, nil
}

func (s *CSVStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return store.ErrNoData
	}
	if err != nil {
		return fmt.Errorf("failed to delete grade log: %w", err)
	}
	logger.Info.Printf("Deleted grade log %s", s.path)
	return nil
}
