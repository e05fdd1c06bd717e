package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pdfdesk/internal/convert"
	"pdfdesk/internal/metrics"
	"pdfdesk/internal/model"
	"pdfdesk/internal/storage"
)

// ConversionService defines the PDF to Word use case.
type ConversionService interface {
	// Convert parks the upload in the workspace, converts it and removes the
	// source PDF whatever the outcome. Conversion failures are *StepError and
	// leave no artifact behind.
	Convert(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Artifact, error)

	// Collect reads a converted artifact into memory and removes it from the
	// workspace. The artifact is removed even when reading fails.
	Collect(ctx context.Context, a *model.Artifact) ([]byte, error)
}

type conversionService struct {
	store   storage.Storage
	conv    convert.Converter
	metrics *metrics.Pipeline
	log     zerolog.Logger
}

// NewConversionService constructs a new ConversionService.
func NewConversionService(store storage.Storage, conv convert.Converter, m *metrics.Pipeline, log zerolog.Logger) ConversionService {
	return &conversionService{
		store:   store,
		conv:    conv,
		metrics: m,
		log:     log.With().Str("component", "converter").Logger(),
	}
}

func (s *conversionService) Convert(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Artifact, error) {
	up, err := newUpload(r, originalFilename, contentType, size)
	if err != nil {
		s.metrics.Conversion(metrics.ConversionInvalid)
		return nil, err
	}

	srcKey := storage.UniqueKey("uploaded", ".pdf")
	src, err := s.store.Put(ctx, srcKey, r, storage.PutObjectOptions{
		ContentType: up.ContentType,
		Metadata:    map[string]string{"original-filename": up.OriginalName},
	})
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	up.Path = src.Path
	defer s.remove(ctx, srcKey)

	dstKey := storage.UniqueKey("converted", ".docx")
	if err := s.conv.Convert(ctx, up.Path, s.store.Path(dstKey), convert.AllPages); err != nil {
		s.remove(ctx, dstKey)
		s.metrics.Conversion(metrics.ConversionFailed)
		s.log.Warn().Err(err).Str("upload", up.OriginalName).Int64("size", src.Size).Msg("conversion failed")
		return nil, &StepError{Message: "Error converting PDF", Err: err}
	}

	s.metrics.Conversion(metrics.ConversionSuccess)
	return &model.Artifact{
		Key:         dstKey,
		Filename:    docxName(up.OriginalName),
		ContentType: convert.ContentType,
	}, nil
}

func (s *conversionService) Collect(ctx context.Context, a *model.Artifact) ([]byte, error) {
	defer s.remove(ctx, a.Key)

	rc, info, err := s.store.Get(ctx, a.Key)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	a.Size = info.Size
	return data, nil
}

// remove is best-effort: a leftover uniquely named file does not affect correctness.
func (s *conversionService) remove(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cleanup failed")
	}
}

// docxName maps "report.PDF" to "report.docx".
func docxName(original string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	base = strings.TrimSpace(base)
	if base == "" || base == "." {
		base = "converted"
	}
	return base + ".docx"
}
