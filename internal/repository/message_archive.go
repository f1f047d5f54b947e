package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"negochat/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageArchive is the optional persistence collaborator. The chat path
// treats every call as best-effort: errors are logged by the caller and
// never affect delivery.
type MessageArchive interface {
	Save(ctx context.Context, msg *models.Message) error
	FetchRecent(ctx context.Context, roomID string, limit int) ([]*models.Message, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) error
}

type PostgresMessageArchive struct {
	pool *pgxpool.Pool
}

func NewMessageArchive(pool *pgxpool.Pool) MessageArchive {
	return &PostgresMessageArchive{
		pool: pool,
	}
}

func (r *PostgresMessageArchive) Save(ctx context.Context, m *models.Message) error {
	query := `
        INSERT INTO messages (id, room_id, user_id, sender_name, content, msg_type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
    `

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.RoomID,
		m.UserID,
		m.Sender,
		m.Body,
		m.Type,
		m.Timestamp,
	)

	if err != nil {
		log.Printf("[REPO ERROR] Failed to save message %s from %s: %v", m.ID, m.Sender, err)
		return err
	}

	return nil
}

func (r *PostgresMessageArchive) FetchRecent(ctx context.Context, roomID string, limit int) ([]*models.Message, error) {
	query := `
        SELECT id, room_id, user_id, sender_name, content, msg_type, created_at
        FROM messages
        WHERE room_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	rows, err := r.pool.Query(ctx, query, roomID, limit)
	if err != nil {
		log.Printf("[REPO ERROR] Fetch failed for room %s: %v", roomID, err)
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m := &models.Message{}
		err := rows.Scan(
			&m.ID,
			&m.RoomID,
			&m.UserID,
			&m.Sender,
			&m.Body,
			&m.Type,
			&m.Timestamp,
		)
		if err != nil {
			log.Printf("[REPO ERROR] Scan failed: %v", err)
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (r *PostgresMessageArchive) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	query := `DELETE FROM messages WHERE created_at < $1`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return fmt.Errorf("archive purge failed: %w", err)
	}

	if tag.RowsAffected() > 0 {
		log.Printf("[REPO] Purged %d archived messages older than %s", tag.RowsAffected(), cutoff.Format(time.RFC3339))
	}

	return nil
}
