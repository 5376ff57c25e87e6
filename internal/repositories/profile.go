package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/models"
)

// ProfileWriteRepository handles profile creation. Profiles are only ever
// created together with their account, inside the same transaction.
type ProfileWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewProfileWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ProfileWriteRepository {
	return &ProfileWriteRepository{db: db, txGetter: txGetter}
}

func (r *ProfileWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts the profile for an account.
func (r *ProfileWriteRepository) Save(ctx context.Context, profile models.ProfileDB) error {
	const query = `
		INSERT INTO user_profiles (user_id, birth_date, country, city, post_code, telephone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	args := []any{
		profile.UserID, profile.BirthDate, profile.Country,
		profile.City, profile.PostCode, profile.TelephoneNumber,
	}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
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
