package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

type userContactsRepo struct {
	db dbtx
}

func (r *userContactsRepo) SaveUserContact(ctx context.Context, c domain.UserContact) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_contacts (user_id, name, type, value, is_primary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, name) DO UPDATE SET
			type = excluded.type, value = excluded.value,
			is_primary = excluded.is_primary, updated_at = excluded.updated_at`,
		c.UserID, c.Name, string(c.Type), c.Value, c.Primary,
		toMicros(c.CreatedAt), toMicros(c.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *userContactsRepo) ListUserContacts(ctx context.Context, userID string) ([]domain.UserContact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, name, type, value, is_primary, created_at, updated_at
		FROM user_contacts WHERE user_id = ? ORDER BY is_primary DESC, name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserContact
	for rows.Next() {
		var (
			c                    domain.UserContact
			typ                  string
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&c.UserID, &c.Name, &typ, &c.Value, &c.Primary, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.Type = domain.ContactType(typ)
		c.CreatedAt = fromMicros(createdAt)
		c.UpdatedAt = fromMicros(updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *userContactsRepo) DeleteUserContact(ctx context.Context, userID, name string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM user_contacts WHERE user_id = ? AND name = ?`, userID, name))
}

func (r *userContactsRepo) ClearPrimaryContacts(ctx context.Context, userID string, t domain.ContactType, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_contacts SET is_primary = 0, updated_at = ?
		WHERE user_id = ? AND type = ? AND is_primary = 1`,
		toMicros(now), userID, string(t))
	return err
}
