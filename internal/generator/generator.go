// Package generator runs the document pipeline: prompt, model call,
// extraction, validation and rendering, with the local fallback standing
// in for any failure other than missing configuration.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/prdforge/prdforge/backend/go-services/internal/extract"
	"github.com/prdforge/prdforge/backend/go-services/internal/llm"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
	"github.com/prdforge/prdforge/backend/go-services/internal/prompt"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
	"github.com/prdforge/prdforge/backend/go-services/pkg/metrics"
)

const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Fallback reasons, also used as metric labels.
const (
	ReasonOffline    = "offline"
	ReasonTransport  = "transport"
	ReasonEmpty      = "empty_response"
	ReasonParse      = "parse"
	ReasonValidation = "validation"
)

// Result is an accepted document body.
type Result struct {
	Content  prd.Content
	Markdown string
	// Source is SourceModel or SourceFallback.
	Source string
	// Reason says why the fallback was used; empty for model output.
	Reason string
}

// Service generates whole documents and regenerates single sections.
type Service struct {
	llm llm.Generator
}

// New returns a Service. A nil generator runs fully offline.
func New(g llm.Generator) *Service {
	return &Service{llm: g}
}

// Generate always yields a complete document unless the endpoint is not
// configured, in which case prd.ErrConfiguration is returned.
func (s *Service) Generate(ctx context.Context, idea string) (*Result, error) {
	logger.Infof("generating PRD for idea: %s", preview(idea))
	if s.llm == nil {
		return s.fallback(idea, ReasonOffline, nil), nil
	}

	raw, err := s.llm.Generate(ctx, prompt.Full(idea))
	if err != nil {
		if errors.Is(err, prd.ErrConfiguration) {
			return nil, err
		}
		return s.fallback(idea, reasonFor(err), err), nil
	}

	res := extract.Extract(raw)
	logger.Debugf("extraction outcome: %s (fenced=%t)", res.Outcome, res.Fenced)
	if res.Outcome == extract.Skeleton {
		return s.fallback(idea, ReasonParse, prd.ErrParse), nil
	}

	content, err := prd.DecodeContent(res.JSON)
	if err != nil {
		return s.fallback(idea, reasonFor(err), err), nil
	}

	metrics.GenerationsTotal.WithLabelValues(SourceModel).Inc()
	logger.WithFields(logger.Fields{"provider": s.llm.Name(), "startup_name": content.StartupName}).Info("generated PRD from model output")
	return &Result{Content: content, Markdown: prd.Render(content), Source: SourceModel}, nil
}

// Offline builds the fallback document without calling the endpoint.
func (s *Service) Offline(idea string) *Result {
	return s.fallback(idea, ReasonOffline, nil)
}

func (s *Service) fallback(idea, reason string, cause error) *Result {
	if cause != nil {
		logger.Warnf("using fallback PRD (%s): %v", reason, cause)
	}
	md, content := prd.Fallback(idea)
	metrics.GenerationsTotal.WithLabelValues(SourceFallback).Inc()
	metrics.FallbackTotal.WithLabelValues(reason).Inc()
	return &Result{Content: content, Markdown: md, Source: SourceFallback, Reason: reason}
}

// RegenerateSection asks the endpoint for a new version of one section
// and merges it into a copy of doc. Endpoint failures are returned as is;
// there is no fallback for a single section. doc is never modified.
func (s *Service) RegenerateSection(ctx context.Context, doc *prd.Document, section prd.Section, feedback string) (*prd.Document, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no generation endpoint", prd.ErrConfiguration)
	}
	p := prompt.Section(section, doc.Content.StartupName, feedback, prompt.SectionText(doc.Content, section))
	raw, err := s.llm.Generate(ctx, p)
	if err != nil {
		metrics.SectionRegenerations.WithLabelValues(string(section), "endpoint_error").Inc()
		return nil, err
	}

	fragment, ok := extract.Object(raw)
	if !ok {
		metrics.SectionRegenerations.WithLabelValues(string(section), "extraction_failed").Inc()
		return nil, fmt.Errorf("%w: reply held no JSON object", prd.ErrSectionExtraction)
	}

	merged, err := prd.MergeSection(doc, section, fragment)
	if err != nil {
		metrics.SectionRegenerations.WithLabelValues(string(section), "extraction_failed").Inc()
		return nil, err
	}
	metrics.SectionRegenerations.WithLabelValues(string(section), "merged").Inc()
	logger.WithFields(logger.Fields{"document": doc.ID, "section": section}).Info("section regenerated")
	return merged, nil
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, prd.ErrEmptyResponse):
		return ReasonEmpty
	case errors.Is(err, prd.ErrParse):
		return ReasonParse
	case errors.Is(err, prd.ErrValidation):
		return ReasonValidation
	}
	return ReasonTransport
}

func preview(idea string) string {
	r := []rune(idea)
	if len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return idea
}
