// README: Conversation store backed by PostgreSQL (row per conversation plus message log).
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farelink/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, c *Conversation) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO conversations (id, user_id, status, step, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		string(c.ID), c.UserID, string(c.Status), string(c.Step),
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Conversation, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, user_id, status, step, created_at, updated_at
        FROM conversations
        WHERE id = $1`, string(id),
	)

	var c Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.Status, &c.Step, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateStep(ctx context.Context, id types.ID, step Step, status Status, now time.Time) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE conversations
        SET step = $1, status = $2, updated_at = $3
        WHERE id = $4`,
		string(step), string(status), now, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, m *Message) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO conversation_messages (conversation_id, role, content, created_at)
        VALUES ($1, $2, $3, $4)`,
		string(m.ConversationID), m.Role, m.Content, m.CreatedAt,
	)
	return err
}

// RecentUserMessages returns up to limit prior user messages, oldest first,
// for the extraction context.
func (s *Store) RecentUserMessages(ctx context.Context, id types.ID, limit int) ([]string, error) {
	rows, err := s.db.Query(ctx, `
        SELECT content FROM (
            SELECT content, created_at FROM conversation_messages
            WHERE conversation_id = $1 AND role = 'user'
            ORDER BY created_at DESC
            LIMIT $2
        ) recent
        ORDER BY created_at ASC`, string(id), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		out = append(out, content)
	}
	return out, rows.Err()
}
