package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPipeline(reg)
	require.NoError(t, err)

	p.Conversion(ConversionSuccess)
	p.Conversion(ConversionSuccess)
	p.Conversion(ConversionFailed)
	p.NotesUpload(NotesRejected)
	p.ChunkSummaries(5, 2)
	p.ChunkSummaries(0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.conversions.WithLabelValues(ConversionSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.conversions.WithLabelValues(ConversionFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.notesUploads.WithLabelValues(NotesRejected)))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.chunkSummaries.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.chunkSummaries.WithLabelValues("failed")))
}

func TestPipeline_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPipeline(reg)
	require.NoError(t, err)

	_, err = NewPipeline(reg)
	assert.Error(t, err)
}

func TestPipeline_NilIsNoop(t *testing.T) {
	var p *Pipeline
	assert.NotPanics(t, func() {
		p.Conversion(ConversionSuccess)
		p.NotesUpload(NotesProcessed)
		p.ChunkSummaries(3, 1)
	})
}
