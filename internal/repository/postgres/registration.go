package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikolay-ai/hackevent/internal/domain"
)

// RegistrationRepository implements domain.RegistrationRepository using PostgreSQL.
type RegistrationRepository struct {
	db *sql.DB
}

// Create relies on ON CONFLICT so the uniqueness check and the insert are a
// single statement.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO registrations (email, name, organization, registered_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		reg.Email, nullString(reg.Name), nullString(reg.Organization), reg.RegisteredAt.UTC(),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	reg.ID = id
	return nil
}

func (r *RegistrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, organization, registered_at
		 FROM registrations ORDER BY registered_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	regs := []domain.Registration{}
	for rows.Next() {
		var (
			reg       domain.Registration
			name, org sql.NullString
		)
		if err := rows.Scan(&reg.ID, &reg.Email, &name, &org, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.Name = name.String
		reg.Organization = org.String
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
