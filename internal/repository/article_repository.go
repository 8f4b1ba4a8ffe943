package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ArticleFilter narrows List.  Nil pointers match both states.
type ArticleFilter struct {
	Published *bool
	Archived  *bool
}

// ArticleRepo stores blog articles.
type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) *ArticleRepo { return &ArticleRepo{db: db} }

const articleColumns = "id, user_id, title, slug, excerpt, cover_image, content, cta, seo, social_content, " +
	"related_project_id, tags, published, archived, reading_time, published_date, created_at, updated_at"

func scanArticle(row rowScanner) (model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Slug, &a.Excerpt, &a.CoverImage, &a.Content, &a.CTA, &a.SEO,
		&a.SocialContent, &a.RelatedProjectID, &a.Tags, &a.Published, &a.Archived, &a.ReadingTime,
		&a.PublishedDate, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// List returns articles newest first.
func (r *ArticleRepo) List(ctx context.Context, f ArticleFilter) ([]model.Article, error) {
	q := "SELECT " + articleColumns + " FROM articles"
	var (
		where []string
		args  []any
	)
	if f.Published != nil {
		where = append(where, "published = ?")
		args = append(args, *f.Published)
	}
	if f.Archived != nil {
		where = append(where, "archived = ?")
		args = append(args, *f.Archived)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC"
	return getMany(ctx, r.db, scanArticle, q, args...)
}

func (r *ArticleRepo) GetByID(ctx context.Context, id uint64) (model.Article, error) {
	return getOne(ctx, r.db, scanArticle, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
}

// Create inserts a. A reused slug is ErrConflict; an unknown related project
// is ErrNotFound.
func (r *ArticleRepo) Create(ctx context.Context, a model.Article) (model.Article, error) {
	id, err := insert(ctx, r.db,
		`INSERT INTO articles (user_id, title, slug, excerpt, cover_image, content, cta, seo, social_content,
related_project_id, tags, published, archived, reading_time, published_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.Title, a.Slug, a.Excerpt, a.CoverImage, a.Content, a.CTA, a.SEO, a.SocialContent,
		a.RelatedProjectID, a.Tags, a.Published, a.Archived, a.ReadingTime, a.PublishedDate)
	if err != nil {
		return model.Article{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *ArticleRepo) Update(ctx context.Context, id uint64, patch model.ArticlePatch) error {
	u := newUpdate("articles")
	set(u, "title", patch.Title)
	set(u, "slug", patch.Slug)
	set(u, "excerpt", patch.Excerpt)
	set(u, "cover_image", patch.CoverImage)
	set(u, "content", patch.Content)
	set(u, "cta", patch.CTA)
	set(u, "seo", patch.SEO)
	set(u, "social_content", patch.SocialContent)
	set(u, "related_project_id", patch.RelatedProjectID)
	set(u, "tags", patch.Tags)
	set(u, "published", patch.Published)
	set(u, "archived", patch.Archived)
	set(u, "reading_time", patch.ReadingTime)
	set(u, "published_date", patch.PublishedDate)
	return u.exec(ctx, r.db, id)
}

// SetArchived flips the archived flag of article id.
func (r *ArticleRepo) SetArchived(ctx context.Context, id uint64, archived bool) error {
	return r.Update(ctx, id, model.ArticlePatch{Archived: model.Set(archived)})
}

func (r *ArticleRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "articles", id)
}
