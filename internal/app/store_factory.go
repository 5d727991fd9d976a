package app

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/gradebook/internal/store"
	"github.com/shrimpsizemoose/gradebook/internal/store/csvlog"
)

// NewStore opens the grade log named by dsn: a bare path or csv://path.
func NewStore(dsn string, crlf bool) (store.GradeLog, error) {
	logType := store.LogTypeCSV
	path := dsn
	if scheme, rest, ok := strings.Cut(dsn, "://"); ok {
		logType = store.LogType(scheme)
		path = rest
	}

	switch logType {
	case store.LogTypeCSV:
		return csvlog.NewCSVStore(&store.LogConfig{Path: path, Type: logType, CRLF: crlf})
	default:
		return nil, fmt.Errorf("unable to determine grade log type from DSN: %s", dsn)
	}
}
