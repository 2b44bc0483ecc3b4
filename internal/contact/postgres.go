package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DB is the part of pgxpool.Pool the repository uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const insertMessage = `
INSERT INTO contact_messages (id, name, email, message, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`

func (r *PostgresRepository) Save(ctx context.Context, m *Message) error {
	err := r.db.QueryRow(ctx, insertMessage, m.ID, m.Name, m.Email, m.Message, m.Status).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}
