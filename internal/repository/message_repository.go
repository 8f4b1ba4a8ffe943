package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// MessageRepo is the contact inbox.
type MessageRepo struct{ db *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

const messageColumns = "id, name, email, subject, message, is_read, starred, category, created_at"

func scanMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.Starred, &m.Category, &m.CreatedAt)
	return m, err
}

// List returns the inbox newest first.
func (r *MessageRepo) List(ctx context.Context) ([]model.Message, error) {
	return getMany(ctx, r.db, scanMessage, "SELECT "+messageColumns+" FROM messages ORDER BY created_at DESC, id DESC")
}

func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (model.Message, error) {
	return getOne(ctx, r.db, scanMessage, "SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
}

func (r *MessageRepo) Create(ctx context.Context, m model.Message) (model.Message, error) {
	id, err := insert(ctx, r.db,
		"INSERT INTO messages (name, email, subject, message, category) VALUES (?, ?, ?, ?, ?)",
		m.Name, m.Email, m.Subject, m.Message, m.Category)
	if err != nil {
		return model.Message{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *MessageRepo) Update(ctx context.Context, id uint64, patch model.MessagePatch) error {
	u := newUpdate("messages")
	set(u, "is_read", patch.Read)
	set(u, "starred", patch.Starred)
	set(u, "category", patch.Category)
	return u.exec(ctx, r.db, id)
}

func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	return deleteByID(ctx, r.db, "messages", id)
}
