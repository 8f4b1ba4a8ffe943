package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ProjectFilter narrows List.  Zero values match everything.
type ProjectFilter struct {
	Username string
	Status   string
}

// ProjectRepo stores portfolio projects.
type ProjectRepo struct{ db *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

const projectColumns = "p.id, p.user_id, p.title, p.slug, p.description, p.image_url, p.stack, " +
	"p.highlighted_stack, p.demo_url, p.repo_url, p.status, p.created_at, p.updated_at"

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.Stack,
		&p.HighlightedStack, &p.DemoURL, &p.RepoURL, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns projects newest first.
func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) ([]model.Project, error) {
	q := "SELECT " + projectColumns + " FROM projects p"
	var (
		where []string
		args  []any
	)
	if f.Username != "" {
		q += " JOIN users u ON u.id = p.user_id"
		where = append(where, "u.username = ?")
		args = append(args, f.Username)
	}
	if f.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, f.Status)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY p.created_at DESC, p.id DESC"
	return getMany(ctx, r.db, scanProject, q, args...)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	return getOne(ctx, r.db, scanProject, "SELECT "+projectColumns+" FROM projects p WHERE p.id = ?", id)
}

func (r *ProjectRepo) GetBySlug(ctx context.Context, slug string) (model.Project, error) {
	return getOne(ctx, r.db, scanProject, "SELECT "+projectColumns+" FROM projects p WHERE p.slug = ?", slug)
}

// Create inserts p.  A reused slug is ErrConflict.
func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	id, err := insert(ctx, r.db,
		`INSERT INTO projects (user_id, title, slug, description, image_url, stack, highlighted_stack,
demo_url, repo_url, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Title, p.Slug, p.Description, p.ImageURL, p.Stack, p.HighlightedStack,
		p.DemoURL, p.RepoURL, p.Status)
	if err != nil {
		return model.Project{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProjectRepo) Update(ctx context.Context, id uint64, patch model.ProjectPatch) error {
	u := newUpdate("projects")
	set(u, "title", patch.Title)
	set(u, "slug", patch.Slug)
	set(u, "description", patch.Description)
	set(u, "image_url", patch.ImageURL)
	set(u, "stack", patch.Stack)
	set(u, "highlighted_stack", patch.HighlightedStack)
	set(u, "demo_url", patch.DemoURL)
	set(u, "repo_url", patch.RepoURL)
	set(u, "status", patch.Status)
	return u.exec(ctx, r.db, id)
}

func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "projects", id)
}
