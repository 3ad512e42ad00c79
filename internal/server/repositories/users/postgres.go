package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/imararent/imararent/internal/common"
	"github.com/imararent/imararent/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository stores accounts in PostgreSQL via database/sql over the
// pgx stdlib driver.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, name, email, password_hash, role, status)
		 VALUES ($1, $2, lower($3), $4, $5, $6)
		 RETURNING created_at
		 `

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx, query,
		stored.ID, stored.Name, stored.Email, stored.PasswordHash, stored.Role, stored.Status).
		Scan(&stored.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return &stored, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, role, status, coalesce(avatar_key, ''), created_at
		 FROM users
		 WHERE email = lower($1)
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, role, status, coalesce(avatar_key, ''), created_at
		 FROM users
		 WHERE id = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.AvatarKey, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status models.Status) error {
	return r.exec(ctx, `UPDATE users SET status = $2 WHERE id = $1`, id, status)
}

func (r *PostgresRepository) SetAvatarKey(ctx context.Context, id string, key string) error {
	return r.exec(ctx, `UPDATE users SET avatar_key = $2 WHERE id = $1`, id, key)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
