package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// SiteRepo stores the admin-curated site content: the experience timeline,
// the blog idea backlog and the content studio topics and posts.
type SiteRepo struct{ db *sql.DB }

func NewSiteRepo(db *sql.DB) *SiteRepo { return &SiteRepo{db: db} }

// Experiences

const experienceColumns = "id, role, company, period, description, achievements, order_index, created_at"

func scanExperience(row rowScanner) (model.Experience, error) {
	var e model.Experience
	err := row.Scan(&e.ID, &e.Role, &e.Company, &e.Period, &e.Description, &e.Achievements, &e.OrderIndex, &e.CreatedAt)
	return e, err
}

// ListExperiences returns the timeline in display order.
func (r *SiteRepo) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return getMany(ctx, r.db, scanExperience, "SELECT "+experienceColumns+" FROM experiences ORDER BY order_index, id")
}

func (r *SiteRepo) GetExperience(ctx context.Context, id uint64) (model.Experience, error) {
	return getOne(ctx, r.db, scanExperience, "SELECT "+experienceColumns+" FROM experiences WHERE id = ?", id)
}

func (r *SiteRepo) CreateExperience(ctx context.Context, e model.Experience) (model.Experience, error) {
	id, err := insert(ctx, r.db,
		"INSERT INTO experiences (role, company, period, description, achievements, order_index) VALUES (?, ?, ?, ?, ?, ?)",
		e.Role, e.Company, e.Period, e.Description, e.Achievements, e.OrderIndex)
	if err != nil {
		return model.Experience{}, err
	}
	return r.GetExperience(ctx, id)
}

func (r *SiteRepo) UpdateExperience(ctx context.Context, id uint64, patch model.ExperiencePatch) error {
	u := newUpdate("experiences")
	set(u, "role", patch.Role)
	set(u, "company", patch.Company)
	set(u, "period", patch.Period)
	set(u, "description", patch.Description)
	set(u, "achievements", patch.Achievements)
	set(u, "order_index", patch.OrderIndex)
	return u.exec(ctx, r.db, id)
}

func (r *SiteRepo) DeleteExperience(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "experiences", id)
}

// Blog ideas

func scanIdea(row rowScanner) (model.BlogIdea, error) {
	var b model.BlogIdea
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.CreatedAt)
	return b, err
}

func (r *SiteRepo) ListIdeas(ctx context.Context) ([]model.BlogIdea, error) {
	return getMany(ctx, r.db, scanIdea,
		"SELECT id, title, description, created_at FROM blog_ideas ORDER BY created_at DESC, id DESC")
}

func (r *SiteRepo) CreateIdea(ctx context.Context, b model.NewBlogIdea) (model.BlogIdea, error) {
	id, err := insert(ctx, r.db, "INSERT INTO blog_ideas (title, description) VALUES (?, ?)", b.Title, b.Description)
	if err != nil {
		return model.BlogIdea{}, err
	}
	return getOne(ctx, r.db, scanIdea, "SELECT id, title, description, created_at FROM blog_ideas WHERE id = ?", id)
}

func (r *SiteRepo) DeleteIdea(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "blog_ideas", id)
}

// Content studio

func scanTopic(row rowScanner) (model.ContentTopic, error) {
	t := model.ContentTopic{Posts: []model.ContentPost{}}
	err := row.Scan(&t.ID, &t.Title, &t.Status, &t.CreatedAt)
	return t, err
}

const postColumns = "id, topic_id, platform, content, status, created_at"

func scanPost(row rowScanner) (model.ContentPost, error) {
	var p model.ContentPost
	err := row.Scan(&p.ID, &p.TopicID, &p.Platform, &p.Content, &p.Status, &p.CreatedAt)
	return p, err
}

// ListTopics returns every topic newest first with its posts embedded.
func (r *SiteRepo) ListTopics(ctx context.Context) ([]model.ContentTopic, error) {
	topics, err := getMany(ctx, r.db, scanTopic,
		"SELECT id, title, status, created_at FROM content_topics ORDER BY created_at DESC, id DESC")
	if err != nil || len(topics) == 0 {
		return topics, err
	}
	posts, err := getMany(ctx, r.db, scanPost, "SELECT "+postColumns+" FROM content_posts ORDER BY id")
	if err != nil {
		return nil, err
	}
	index := make(map[uint64]int, len(topics))
	for i, t := range topics {
		index[t.ID] = i
	}
	for _, p := range posts {
		if i, ok := index[p.TopicID]; ok {
			topics[i].Posts = append(topics[i].Posts, p)
		}
	}
	return topics, nil
}

// GetTopic returns topic id with its posts.
func (r *SiteRepo) GetTopic(ctx context.Context, id uint64) (model.ContentTopic, error) {
	t, err := getOne(ctx, r.db, scanTopic, "SELECT id, title, status, created_at FROM content_topics WHERE id = ?", id)
	if err != nil {
		return t, err
	}
	posts, err := getMany(ctx, r.db, scanPost, "SELECT "+postColumns+" FROM content_posts WHERE topic_id = ? ORDER BY id", id)
	if err != nil {
		return model.ContentTopic{}, err
	}
	t.Posts = posts
	return t, nil
}

func (r *SiteRepo) CreateTopic(ctx context.Context, t model.ContentTopic) (model.ContentTopic, error) {
	id, err := insert(ctx, r.db, "INSERT INTO content_topics (title, status) VALUES (?, ?)", t.Title, t.Status)
	if err != nil {
		return model.ContentTopic{}, err
	}
	return r.GetTopic(ctx, id)
}

func (r *SiteRepo) UpdateTopic(ctx context.Context, id uint64, patch model.ContentTopicPatch) error {
	u := newUpdate("content_topics")
	set(u, "title", patch.Title)
	set(u, "status", patch.Status)
	return u.exec(ctx, r.db, id)
}

func (r *SiteRepo) GetPost(ctx context.Context, id uint64) (model.ContentPost, error) {
	return getOne(ctx, r.db, scanPost, "SELECT "+postColumns+" FROM content_posts WHERE id = ?", id)
}

// CreatePost inserts p.  An unknown topic is ErrNotFound.
func (r *SiteRepo) CreatePost(ctx context.Context, p model.ContentPost) (model.ContentPost, error) {
	id, err := insert(ctx, r.db,
		"INSERT INTO content_posts (topic_id, platform, content, status) VALUES (?, ?, ?, ?)",
		p.TopicID, p.Platform, p.Content, p.Status)
	if err != nil {
		return model.ContentPost{}, err
	}
	return r.GetPost(ctx, id)
}

func (r *SiteRepo) UpdatePost(ctx context.Context, id uint64, patch model.ContentPostPatch) error {
	u := newUpdate("content_posts")
	set(u, "content", patch.Content)
	set(u, "status", patch.Status)
	return u.exec(ctx, r.db, id)
}
