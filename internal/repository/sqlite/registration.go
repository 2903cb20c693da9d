package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nikolay-ai/hackevent/internal/domain"
)

// RegistrationRepository implements domain.RegistrationRepository using SQLite.
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new SQLite-backed RegistrationRepository.
func NewRegistrationRepository(db *DB) *RegistrationRepository {
	return &RegistrationRepository{db: db.SqlDB}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO registrations (email, name, organization, registered_at)
		 VALUES (?, ?, ?, ?)`,
		reg.Email, nullString(reg.Name), nullString(reg.Organization), reg.RegisteredAt.UTC(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
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

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
