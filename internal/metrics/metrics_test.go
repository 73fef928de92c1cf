package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCommand(t *testing.T) {
	r := New()

	r.RecordCommand("DIR", "", time.Millisecond)
	r.RecordCommand("DIR", "", time.Millisecond)
	r.RecordCommand("MD", "NameConflict", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.commandsTotal.WithLabelValues("DIR", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commandsTotal.WithLabelValues("MD", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("NameConflict")))
}

func TestRecordBatch(t *testing.T) {
	r := New()

	r.RecordBatchLine()
	r.RecordBatchLine()
	r.RecordBatchRun("failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.batchLinesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.batchRunsTotal.WithLabelValues("failed")))
}

func TestRecordSnapshotAndUsage(t *testing.T) {
	r := New()

	r.RecordSnapshot("save", nil)
	r.RecordSnapshot("load", errors.New("boom"))
	r.SetDiskUsage(512)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.snapshotOpsTotal.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.snapshotOpsTotal.WithLabelValues("load", "error")))
	assert.Equal(t, 512.0, testutil.ToFloat64(r.diskBytesUsed))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.RecordCommand("DIR", "", time.Second)
	r.RecordBatchLine()
	r.RecordBatchRun("ok")
	r.SetDiskUsage(1)
	r.RecordSnapshot("save", nil)
}

func TestHandler(t *testing.T) {
	r := New()
	r.RecordCommand("VER", "", time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `dossim_commands_total{status="ok",verb="VER"} 1`), body)
}
