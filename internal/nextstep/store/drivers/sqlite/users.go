package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		u.ID, string(u.Status), toMicros(u.CreatedAt), toMicros(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	var (
		u                    domain.User
		status               string
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, status, created_at, updated_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Status = domain.UserStatus(status)
	u.CreatedAt = fromMicros(createdAt)
	u.UpdatedAt = fromMicros(updatedAt)
	return u, nil
}

func (r *usersRepo) UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), toMicros(now), id,
	))
}
