package identity

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// PostgresProvider implements Provider against the accounts table created by
// database.InitPostgresTables.
type PostgresProvider struct {
	db *sql.DB
}

func NewPostgresProvider(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

// DeleteAccount removes the account row for uid. A UID that does not parse or
// does not match any row yields ErrAccountNotFound so callers can distinguish
// absence from a real failure.
func (p *PostgresProvider) DeleteAccount(ctx context.Context, uid string) error {
	parsedUID, err := uuid.Parse(uid)
	if err != nil {
		return ErrAccountNotFound
	}

	result, err := p.db.ExecContext(ctx, `DELETE FROM accounts WHERE uid = $1`, parsedUID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}
