package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// UserService manages the user identities credentials and OTPs belong to.
type UserService struct {
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// CreateUser registers an ACTIVE user with the given id.
func (s *UserService) CreateUser(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, ErrInvalidRequest.WithMessage("user id is required")
	}
	ts := now(s.Now)
	u := domain.User{ID: userID, Status: domain.UserActive, CreatedAt: ts, UpdatedAt: ts}

	err := s.Store.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrUserAlreadyExists
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.Logger.Info("user created", "user_id", userID)
	return u, nil
}

// GetUser fetches a user by id, including removed ones.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateUserStatus changes the user's status. Removed users cannot be revived.
func (s *UserService) UpdateUserStatus(ctx context.Context, userID string, status domain.UserStatus) (domain.User, error) {
	switch status {
	case domain.UserActive, domain.UserBlocked, domain.UserRemoved:
	default:
		return domain.User{}, ErrInvalidRequest.WithMessage("unknown user status")
	}

	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if u, err = loadUser(ctx, tx, userID); err != nil {
			return err
		}
		u.Status = status
		u.UpdatedAt = now(s.Now)
		if err := tx.Users().UpdateUserStatus(ctx, userID, status, u.UpdatedAt); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	s.Logger.Info("user status updated", "user_id", userID, "status", status)
	return u, nil
}

// SaveContact creates or replaces a named contact. Saving a primary contact
// demotes the user's other primaries of the same type.
func (s *UserService) SaveContact(ctx context.Context, c domain.UserContact) (domain.UserContact, error) {
	switch c.Type {
	case domain.ContactPhone, domain.ContactEmail, domain.ContactOther:
	default:
		return domain.UserContact{}, ErrInvalidRequest.WithMessage("unknown contact type")
	}
	if c.Name == "" || c.Value == "" {
		return domain.UserContact{}, ErrInvalidRequest.WithMessage("contact name and value are required")
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadUser(ctx, tx, c.UserID); err != nil {
			return err
		}
		ts := now(s.Now)
		c.CreatedAt, c.UpdatedAt = ts, ts

		existing, err := tx.UserContacts().ListUserContacts(ctx, c.UserID)
		if err != nil {
			return fmt.Errorf("list user contacts: %w", err)
		}
		for _, e := range existing {
			if e.Name == c.Name {
				c.CreatedAt = e.CreatedAt
			}
		}

		if c.Primary {
			if err := tx.UserContacts().ClearPrimaryContacts(ctx, c.UserID, c.Type, ts); err != nil {
				return fmt.Errorf("clear primary contacts: %w", err)
			}
		}
		if err := tx.UserContacts().SaveUserContact(ctx, c); err != nil {
			return fmt.Errorf("save user contact: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.UserContact{}, err
	}

	s.Logger.Info("user contact saved", "user_id", c.UserID, "contact_name", c.Name, "contact_type", c.Type, "primary", c.Primary)
	return c, nil
}

// ListContacts returns the user's contacts, primary ones first.
func (s *UserService) ListContacts(ctx context.Context, userID string) ([]domain.UserContact, error) {
	if _, err := loadUser(ctx, s.Store, userID); err != nil {
		return nil, err
	}
	contacts, err := s.Store.UserContacts().ListUserContacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user contacts: %w", err)
	}
	return contacts, nil
}

func (s *UserService) DeleteContact(ctx context.Context, userID, name string) error {
	err := s.Store.UserContacts().DeleteUserContact(ctx, userID, name)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserContactNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user contact: %w", err)
	}

	s.Logger.Info("user contact deleted", "user_id", userID, "contact_name", name)
	return nil
}
