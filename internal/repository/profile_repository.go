package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ProfileRepo stores portfolio profiles; each user owns at most one.
type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

const profileColumns = "p.id, p.user_id, p.name, p.hero_title, p.hero_subtitle, p.bio_summary, p.about_text, " +
	"p.profile_image_url, p.cv_url, p.social_links, p.tech_stack_summary, p.created_at, p.updated_at"

func scanProfile(row rowScanner) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.HeroTitle, &p.HeroSubtitle, &p.BioSummary, &p.AboutText,
		&p.ProfileImageURL, &p.CVURL, &p.SocialLinks, &p.TechStackSummary, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// First returns the oldest profile, shown to anonymous visitors.
func (r *ProfileRepo) First(ctx context.Context) (model.Profile, error) {
	return getOne(ctx, r.db, scanProfile, "SELECT "+profileColumns+" FROM profiles p ORDER BY p.id LIMIT 1")
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (model.Profile, error) {
	return getOne(ctx, r.db, scanProfile, "SELECT "+profileColumns+" FROM profiles p WHERE p.id = ?", id)
}

// GetByUserID returns the profile owned by userID.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	return getOne(ctx, r.db, scanProfile, "SELECT "+profileColumns+" FROM profiles p WHERE p.user_id = ?", userID)
}

// GetByUsername returns the profile of the user with the given login name.
func (r *ProfileRepo) GetByUsername(ctx context.Context, username string) (model.Profile, error) {
	return getOne(ctx, r.db, scanProfile,
		"SELECT "+profileColumns+" FROM profiles p JOIN users u ON u.id = p.user_id WHERE u.username = ?", username)
}

// Create inserts p.  A second profile for the same user is ErrConflict.
func (r *ProfileRepo) Create(ctx context.Context, p model.Profile) (model.Profile, error) {
	id, err := insert(ctx, r.db,
		`INSERT INTO profiles (user_id, name, hero_title, hero_subtitle, bio_summary, about_text,
profile_image_url, cv_url, social_links, tech_stack_summary) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.HeroTitle, p.HeroSubtitle, p.BioSummary, p.AboutText,
		p.ProfileImageURL, p.CVURL, p.SocialLinks, p.TechStackSummary)
	if err != nil {
		return model.Profile{}, err
	}
	return r.GetByID(ctx, id)
}

// Update writes the set fields of patch to profile id.
func (r *ProfileRepo) Update(ctx context.Context, id uint64, patch model.ProfilePatch) error {
	u := newUpdate("profiles")
	set(u, "name", patch.Name)
	set(u, "hero_title", patch.HeroTitle)
	set(u, "hero_subtitle", patch.HeroSubtitle)
	set(u, "bio_summary", patch.BioSummary)
	set(u, "about_text", patch.AboutText)
	set(u, "profile_image_url", patch.ProfileImageURL)
	set(u, "cv_url", patch.CVURL)
	set(u, "social_links", patch.SocialLinks)
	set(u, "tech_stack_summary", patch.TechStackSummary)
	return u.exec(ctx, r.db, id)
}

func (r *ProfileRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "profiles", id)
}
