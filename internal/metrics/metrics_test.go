package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsTotal(t *testing.T) {
	before := testutil.ToFloat64(RecordsTotal.WithLabelValues("B"))
	RecordsTotal.WithLabelValues("B").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RecordsTotal.WithLabelValues("B")))
}

func TestWriteTextfile(t *testing.T) {
	assert.NoError(t, WriteTextfile(""))

	AdminActionsTotal.WithLabelValues("clear", "denied").Inc()
	ScoreHistogram.Observe(85)

	path := filepath.Join(t.TempDir(), "gradebook.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gradebook_admin_actions_total{action="clear",result="denied"}`)
	assert.Contains(t, string(data), "gradebook_score_bucket")
}
