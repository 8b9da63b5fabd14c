package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prdforge/prdforge/backend/go-services/internal/generator"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd/repository"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
)

// Export formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Archiver stores export files and hands out temporary download links.
// storage.MinIOStorage implements it.
type Archiver interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Export is a rendered download.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ArchiveLinks are presigned URLs for the archived exports.
type ArchiveLinks struct {
	Markdown  string    `json:"markdown"`
	JSON      string    `json:"json"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service defines the document business operations used by the handler layer.
// Every operation taking an owner treats documents of other owners as absent.
type Service interface {
	Generate(ctx context.Context, idea string) (*generator.Result, error)
	Create(ctx context.Context, owner, idea string) (*prd.Document, error)
	Get(ctx context.Context, owner, id string) (*prd.Document, error)
	List(ctx context.Context, owner string) ([]*prd.Document, error)
	Overwrite(ctx context.Context, owner, id string, title *string, content []byte) (*prd.Document, error)
	RegenerateSection(ctx context.Context, owner, id, section, feedback string) (*prd.Document, error)
	Delete(ctx context.Context, owner, id string) error
	Export(ctx context.Context, owner, id, format string) (*Export, error)
	Archive(ctx context.Context, owner, id string) (*ArchiveLinks, error)
}

// Options tunes optional collaborators.
type Options struct {
	// Archiver is nil when object storage is not configured.
	Archiver   Archiver
	ArchiveTTL time.Duration
}

type service struct {
	repo       repository.Repository
	gen        *generator.Service
	archiver   Archiver
	archiveTTL time.Duration
}

// New returns a Service over repo using gen for all model calls.
func New(repo repository.Repository, gen *generator.Service, opts Options) Service {
	ttl := opts.ArchiveTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &service{repo: repo, gen: gen, archiver: opts.Archiver, archiveTTL: ttl}
}

func (s *service) Generate(ctx context.Context, idea string) (*generator.Result, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, fmt.Errorf("%w: idea is required", prd.ErrInvalidInput)
	}
	return s.gen.Generate(ctx, idea)
}

func (s *service) Create(ctx context.Context, owner, idea string) (*prd.Document, error) {
	res, err := s.Generate(ctx, idea)
	if err != nil {
		return nil, err
	}
	doc := &prd.Document{
		Owner:       owner,
		Title:       prd.DeriveTitle(res.Content),
		Description: prd.DeriveDescription(res.Content, strings.TrimSpace(idea)),
		Markdown:    res.Markdown,
		Content:     res.Content,
	}
	if _, err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", prd.ErrPersistence, err)
	}
	logger.Infof("created PRD %s for %s (source=%s)", doc.ID, owner, res.Source)
	return doc, nil
}

func (s *service) Get(ctx context.Context, owner, id string) (*prd.Document, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if d.Owner != owner {
		return nil, prd.ErrNotFound
	}
	return d, nil
}

func (s *service) List(ctx context.Context, owner string) ([]*prd.Document, error) {
	list, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

// Overwrite replaces content and markdown wholesale. The description is
// whatever was stored at creation; title changes only when given.
func (s *service) Overwrite(ctx context.Context, owner, id string, title *string, content []byte) (*prd.Document, error) {
	c, err := prd.DecodeContent(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", prd.ErrInvalidInput, err)
	}
	d, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if title != nil && strings.TrimSpace(*title) != "" {
		d.Title = strings.TrimSpace(*title)
	}
	d.Content = c
	d.Markdown = prd.Render(c)
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, storeError(err)
	}
	return d, nil
}

func (s *service) RegenerateSection(ctx context.Context, owner, id, section, feedback string) (*prd.Document, error) {
	sec, err := prd.ParseSection(section)
	if err != nil {
		return nil, err
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, fmt.Errorf("%w: feedback is required", prd.ErrInvalidInput)
	}
	existing, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	merged, err := s.gen.RegenerateSection(ctx, existing, sec, feedback)
	if err != nil {
		return nil, err
	}
	// last write wins against a concurrent update of the same document
	if err := s.repo.Update(ctx, merged); err != nil {
		return nil, storeError(err)
	}
	return merged, nil
}

func (s *service) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *service) Export(ctx context.Context, owner, id, format string) (*Export, error) {
	d, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return render(d, format)
}

func render(d *prd.Document, format string) (*Export, error) {
	switch format {
	case FormatMarkdown, "md":
		return &Export{
			Filename:    prd.ExportFilename(d.Title, "md"),
			ContentType: "text/markdown; charset=utf-8",
			Body:        prd.ExportMarkdown(d),
		}, nil
	case FormatJSON:
		body, err := prd.ExportJSON(d)
		if err != nil {
			return nil, err
		}
		return &Export{
			Filename:    prd.ExportFilename(d.Title, "json"),
			ContentType: "application/json",
			Body:        body,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown export format %q", prd.ErrInvalidInput, format)
}

// Archive uploads both exports under prds/<owner>/<id>/ and returns
// presigned links to them.
func (s *service) Archive(ctx context.Context, owner, id string) (*ArchiveLinks, error) {
	if s.archiver == nil {
		return nil, prd.ErrArchiveUnavailable
	}
	d, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	links := &ArchiveLinks{ExpiresAt: time.Now().UTC().Add(s.archiveTTL)}
	for _, format := range []string{FormatMarkdown, FormatJSON} {
		exp, err := render(d, format)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("prds/%s/%s/%s", owner, d.ID, exp.Filename)
		if err := s.archiver.UploadFile(ctx, key, bytes.NewReader(exp.Body), int64(len(exp.Body)), exp.ContentType); err != nil {
			return nil, fmt.Errorf("%w: %w", prd.ErrPersistence, err)
		}
		url, err := s.archiver.GetPresignedURL(ctx, key, s.archiveTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", prd.ErrPersistence, err)
		}
		if format == FormatMarkdown {
			links.Markdown = url
		} else {
			links.JSON = url
		}
	}
	return links, nil
}

func storeError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return prd.ErrNotFound
	}
	return fmt.Errorf("%w: %w", prd.ErrPersistence, err)
}
