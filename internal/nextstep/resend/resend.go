// Package resend remembers when an OTP message was last delivered per
// operation or user, backing the OTP resend delay.
package resend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// StoreTracker keeps the timestamps in the service database.
type StoreTracker struct {
	Store store.Store
}

func NewStoreTracker(st store.Store) *StoreTracker {
	return &StoreTracker{Store: st}
}

func (t *StoreTracker) LastMessage(ctx context.Context, key string) (time.Time, bool, error) {
	at, err := t.Store.MessageLog().GetLastMessage(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get last message: %w", err)
	}
	return at, true, nil
}

func (t *StoreTracker) MarkMessage(ctx context.Context, key string, at time.Time) error {
	if err := t.Store.MessageLog().SetLastMessage(ctx, key, at); err != nil {
		return fmt.Errorf("set last message: %w", err)
	}
	return nil
}
