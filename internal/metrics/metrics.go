// Package metrics exposes counters for the conversion and notes pipelines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Conversion results.
const (
	ConversionSuccess = "success"
	ConversionFailed  = "failed"
	ConversionInvalid = "invalid"
)

// Notes upload outcomes.
const (
	NotesProcessed     = "processed"
	NotesNoText        = "no_text"
	NotesExtractFailed = "extract_failed"
	NotesRejected      = "rejected"
	NotesInvalid       = "invalid"
)

// Pipeline counts what happens to uploads after they reach a handler.
// A nil *Pipeline is valid and records nothing.
type Pipeline struct {
	conversions    *prometheus.CounterVec
	notesUploads   *prometheus.CounterVec
	chunkSummaries *prometheus.CounterVec
}

// NewPipeline creates the pipeline counters and registers them on reg.
func NewPipeline(reg prometheus.Registerer) (*Pipeline, error) {
	p := &Pipeline{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdfdesk_conversions_total",
				Help: "PDF to DOCX conversion attempts by result.",
			},
			[]string{"result"},
		),
		notesUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdfdesk_notes_uploads_total",
				Help: "Notes upload attempts by outcome.",
			},
			[]string{"outcome"},
		),
		chunkSummaries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdfdesk_chunk_summaries_total",
				Help: "Chunk summarization calls by result.",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{p.conversions, p.notesUploads, p.chunkSummaries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Pipeline) Conversion(result string) {
	if p == nil {
		return
	}
	p.conversions.WithLabelValues(result).Inc()
}

func (p *Pipeline) NotesUpload(outcome string) {
	if p == nil {
		return
	}
	p.notesUploads.WithLabelValues(outcome).Inc()
}

// ChunkSummaries records a digest run: total chunks and how many failed.
func (p *Pipeline) ChunkSummaries(total, failed int) {
	if p == nil {
		return
	}
	if ok := total - failed; ok > 0 {
		p.chunkSummaries.WithLabelValues("ok").Add(float64(ok))
	}
	if failed > 0 {
		p.chunkSummaries.WithLabelValues("failed").Add(float64(failed))
	}
}
