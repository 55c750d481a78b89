package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

type messageLogRepo struct {
	db dbtx
}

// GetLastMessage returns store.ErrNotFound when nothing was sent for key yet.
func (r *messageLogRepo) GetLastMessage(ctx context.Context, key string) (time.Time, error) {
	var at int64
	err := r.db.QueryRowContext(ctx,
		`SELECT last_message_at FROM otp_message_log WHERE message_key = ?`, key,
	).Scan(&at)
	if err != nil {
		return time.Time{}, mapNotFound(err)
	}
	return fromMicros(at), nil
}

func (r *messageLogRepo) SetLastMessage(ctx context.Context, key string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_message_log (message_key, last_message_at) VALUES (?, ?)
		ON CONFLICT (message_key) DO UPDATE SET last_message_at = excluded.last_message_at`,
		key, toMicros(at),
	)
	return err
}

var _ store.MessageLog = (*messageLogRepo)(nil)
