package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/models"
)

// MessageReadRepository handles message queries.
type MessageReadRepository struct {
	db *sqlx.DB
}

func NewMessageReadRepository(db *sqlx.DB) *MessageReadRepository {
	return &MessageReadRepository{db: db}
}

// CountUnread returns the number of unread messages addressed to the user.
func (r *MessageReadRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND is_new = TRUE
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", count,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return count, nil
}

// ListConversation returns every message in which either id appears as
// sender or receiver, newest first. The predicate is deliberately the wide
// one: messages the viewer or the other party exchanged with third parties
// are included, matching the conversation view the API has always served.
func (r *MessageReadRepository) ListConversation(ctx context.Context, viewerID, otherID int64) ([]models.MessageDB, error) {
	const query = `
		SELECT message_id, sender_id, receiver_id, content, sent_at, is_new
		FROM messages
		WHERE sender_id IN ($1, $2) OR receiver_id IN ($1, $2)
		ORDER BY sent_at DESC, message_id DESC
	`

	var messages []models.MessageDB
	err := r.db.SelectContext(ctx, &messages, query, viewerID, otherID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{viewerID, otherID},
		"result", len(messages),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return messages, nil
}

// MessageWriteRepository handles message creation and read-state updates.
type MessageWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewMessageWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MessageWriteRepository {
	return &MessageWriteRepository{db: db, txGetter: txGetter}
}

func (r *MessageWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save appends a new unread message stamped at insert time and returns the
// stored record.
func (r *MessageWriteRepository) Save(ctx context.Context, senderID, receiverID int64, content string) (*models.MessageDB, error) {
	const query = `
		INSERT INTO messages (sender_id, receiver_id, content, sent_at, is_new)
		VALUES ($1, $2, $3, NOW(), TRUE)
		RETURNING message_id, sender_id, receiver_id, content, sent_at, is_new
	`
	args := []any{senderID, receiverID, content}

	var message models.MessageDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &message, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", message.MessageID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &message, nil
}

// MarkRead flips is_new to false for the given message ids addressed to the
// receiver. The update is unconditional on the prior flag value, so
// concurrent double-application is harmless.
func (r *MessageWriteRepository) MarkRead(ctx context.Context, receiverID int64, messageIDs []int64) error {
	if len(messageIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		`UPDATE messages SET is_new = FALSE WHERE receiver_id = ? AND message_id IN (?)`,
		receiverID, messageIDs,
	)
	if err != nil {
		return err
	}

	executor := r.executor(ctx)
	query = executor.Rebind(query)

	res, err := executor.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}
