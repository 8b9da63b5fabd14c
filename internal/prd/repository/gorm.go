package repository

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

// prdRow is the SQL table layout; content is stored as a JSON column.
type prdRow struct {
	ID          string      `gorm:"primaryKey;size:36"`
	Owner       string      `gorm:"index:idx_prds_owner_created,priority:1;size:255;not null"`
	Title       string      `gorm:"not null"`
	Description string      `gorm:"not null"`
	Markdown    string      `gorm:"type:text"`
	Content     prd.Content `gorm:"serializer:json;type:text"`
	CreatedAt   time.Time   `gorm:"index:idx_prds_owner_created,priority:2"`
	UpdatedAt   time.Time
}

func (prdRow) TableName() string { return "prds" }

func rowFrom(d *prd.Document) *prdRow {
	return &prdRow{
		ID:          d.ID,
		Owner:       d.Owner,
		Title:       d.Title,
		Description: d.Description,
		Markdown:    d.Markdown,
		Content:     d.Content,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *prdRow) document() *prd.Document {
	return &prd.Document{
		ID:          r.ID,
		Owner:       r.Owner,
		Title:       r.Title,
		Description: r.Description,
		Markdown:    r.Markdown,
		Content:     r.Content,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// OpenSQLite opens (creating if needed) an embedded SQLite database and
// migrates the documents table. Use ":memory:" for a throwaway store.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&prdRow{}); err != nil {
		return nil, err
	}
	return db, nil
}

// GormRepo implements Repository on any gorm dialect; the service ships
// with SQLite.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (g *GormRepo) Create(ctx context.Context, doc *prd.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if err := g.db.WithContext(ctx).Create(rowFrom(doc)).Error; err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (g *GormRepo) Get(ctx context.Context, id string) (*prd.Document, error) {
	var row prdRow
	err := g.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.document(), nil
}

func (g *GormRepo) ListByOwner(ctx context.Context, owner string) ([]*prd.Document, error) {
	var rows []prdRow
	err := g.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*prd.Document, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].document())
	}
	return out, nil
}

func (g *GormRepo) Update(ctx context.Context, doc *prd.Document) error {
	now := time.Now().UTC()
	res := g.db.WithContext(ctx).
		Model(&prdRow{}).
		Where("id = ?", doc.ID).
		Select("title", "markdown", "content", "updated_at").
		Updates(&prdRow{Title: doc.Title, Markdown: doc.Markdown, Content: doc.Content, UpdatedAt: now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	doc.UpdatedAt = now
	return nil
}

func (g *GormRepo) Delete(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&prdRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
