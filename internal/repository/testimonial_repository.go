package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// TestimonialRepo stores testimonials.
type TestimonialRepo struct{ db *sql.DB }

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo { return &TestimonialRepo{db: db} }

const testimonialColumns = "t.id, t.user_id, t.name, t.role, t.content, t.rating, t.created_at, t.updated_at"

func scanTestimonial(row rowScanner) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Role, &t.Content, &t.Rating, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// List returns testimonials newest first, optionally only those owned by the
// user with the given login name.
func (r *TestimonialRepo) List(ctx context.Context, username string) ([]model.Testimonial, error) {
	if username == "" {
		return getMany(ctx, r.db, scanTestimonial,
			"SELECT "+testimonialColumns+" FROM testimonials t ORDER BY t.created_at DESC, t.id DESC")
	}
	return getMany(ctx, r.db, scanTestimonial,
		"SELECT "+testimonialColumns+" FROM testimonials t JOIN users u ON u.id = t.user_id "+
			"WHERE u.username = ? ORDER BY t.created_at DESC, t.id DESC", username)
}

// ListByUser returns the testimonials owned by userID.
func (r *TestimonialRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Testimonial, error) {
	return getMany(ctx, r.db, scanTestimonial,
		"SELECT "+testimonialColumns+" FROM testimonials t WHERE t.user_id = ? ORDER BY t.created_at DESC, t.id DESC", userID)
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id uint64) (model.Testimonial, error) {
	return getOne(ctx, r.db, scanTestimonial, "SELECT "+testimonialColumns+" FROM testimonials t WHERE t.id = ?", id)
}

func (r *TestimonialRepo) Create(ctx context.Context, t model.Testimonial) (model.Testimonial, error) {
	id, err := insert(ctx, r.db,
		"INSERT INTO testimonials (user_id, name, role, content, rating) VALUES (?, ?, ?, ?, ?)",
		t.UserID, t.Name, t.Role, t.Content, t.Rating)
	if err != nil {
		return model.Testimonial{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *TestimonialRepo) Update(ctx context.Context, id uint64, patch model.TestimonialPatch) error {
	u := newUpdate("testimonials")
	set(u, "name", patch.Name)
	set(u, "role", patch.Role)
	set(u, "content", patch.Content)
	set(u, "rating", patch.Rating)
	return u.exec(ctx, r.db, id)
}

func (r *TestimonialRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "testimonials", id)
}
