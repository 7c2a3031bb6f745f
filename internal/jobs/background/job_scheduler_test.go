package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeExporter struct {
	calls   atomic.Int32
	results []*models.ExportResult
	err     error
}

func (f *fakeExporter) ExportTenant(context.Context, uuid.UUID) (*models.ExportResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeExporter) ExportAll(ctx context.Context) ([]*models.ExportResult, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("export run without deadline")
	}
	return f.results, f.err
}

func TestNewJobScheduler_RejectsNonPositiveInterval(t *testing.T) {
	_, err := NewJobScheduler(&fakeExporter{}, 0, nil)
	assert.Error(t, err)
}

func TestJobScheduler_RegistersExportJob(t *testing.T) {
	js, err := NewJobScheduler(&fakeExporter{}, time.Hour, nil)
	require.NoError(t, err)
	defer func() { _ = js.Stop() }()

	assert.Equal(t, []string{exportJobName}, js.JobNames())
}

func TestJobScheduler_RunsExportsOnInterval(t *testing.T) {
	exporter := &fakeExporter{results: []*models.ExportResult{{TenantID: uuid.New()}}}
	js, err := NewJobScheduler(exporter, 20*time.Millisecond, nil)
	require.NoError(t, err)

	js.Start()
	assert.Eventually(t, func() bool {
		return exporter.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, js.Stop())
}

func TestExportTenants_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	exporter := &fakeExporter{
		results: []*models.ExportResult{{TenantID: uuid.New()}},
		err:     errors.New("tenant x: upload failed"),
	}
	js, err := NewJobScheduler(exporter, time.Hour, zap.New(core))
	require.NoError(t, err)
	defer func() { _ = js.Stop() }()

	err = js.exportTenants()
	require.Error(t, err)

	entries := logs.FilterMessage("tenant export finished with errors").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["exported"])

	exporter.err = nil
	require.NoError(t, js.exportTenants())
	assert.Equal(t, 1, logs.FilterMessage("tenant export completed").Len())
}
