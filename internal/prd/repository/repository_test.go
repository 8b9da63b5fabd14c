package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

func newDoc(owner, title string) *prd.Document {
	md, c := prd.Fallback(title)
	return &prd.Document{Owner: owner, Title: title, Description: "desc of " + title, Markdown: md, Content: c}
}

// exerciseRepository runs the behavior every Repository must share.
func exerciseRepository(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	d := newDoc("sub-1", "first")
	id, err := r.Create(ctx, d)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.False(t, d.CreatedAt.IsZero())

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "first", got.Title)
	require.Equal(t, "desc of first", got.Description)
	require.Equal(t, d.Content, got.Content)
	require.Equal(t, d.Markdown, got.Markdown)

	time.Sleep(5 * time.Millisecond)
	_, err = r.Create(ctx, newDoc("sub-1", "second"))
	require.NoError(t, err)
	_, err = r.Create(ctx, newDoc("sub-2", "other"))
	require.NoError(t, err)

	list, err := r.ListByOwner(ctx, "sub-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second", list[0].Title)
	require.Equal(t, "first", list[1].Title)

	empty, err := r.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, empty)

	// update never rewrites description or owner
	got.Title = "renamed"
	got.Description = "rogue"
	got.Owner = "sub-9"
	got.Content.TechStack.Backend = "Go"
	got.Markdown = prd.Render(got.Content)
	require.NoError(t, r.Update(ctx, got))

	after, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "renamed", after.Title)
	require.Equal(t, "desc of first", after.Description)
	require.Equal(t, "sub-1", after.Owner)
	require.Equal(t, "Go", after.Content.TechStack.Backend)
	require.True(t, after.CreatedAt.Equal(got.CreatedAt) || after.CreatedAt.Sub(got.CreatedAt).Abs() < time.Millisecond)

	require.ErrorIs(t, r.Update(ctx, &prd.Document{ID: "missing"}), ErrNotFound)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, id), ErrNotFound)
}

func TestMemoryRepo(t *testing.T) {
	exerciseRepository(t, NewMemoryRepo())
}

func TestMemoryRepoCopiesDocuments(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	d := newDoc("sub-1", "copy")
	id, err := r.Create(ctx, d)
	require.NoError(t, err)

	d.Content.Overview.TargetAudience[0] = "mutated"
	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, "mutated", got.Content.Overview.TargetAudience[0])

	got.Title = "changed"
	again, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "copy", again.Title)
}

func TestGormRepo(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	exerciseRepository(t, NewGormRepo(db))
}

func TestGormRepoKeepsOptionalSection(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	r := NewGormRepo(db)
	ctx := context.Background()

	d := newDoc("sub-1", "no ai")
	d.Content.AIIntegration = nil
	id, err := r.Create(ctx, d)
	require.NoError(t, err)
	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got.Content.AIIntegration)
}
