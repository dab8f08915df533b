package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// AdminRepository reads the admin_users table owned by the auth service.
type AdminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// NotificationEmails returns the addresses of admin and staff users.
func (r *AdminRepository) NotificationEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT email FROM admin_users WHERE role IN ('ADMIN', 'STAFF') AND email IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query admin emails: %w", err)
	}

	emails, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan admin emails: %w", err)
	}
	return emails, nil
}
