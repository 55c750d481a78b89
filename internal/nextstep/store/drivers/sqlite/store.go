package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	_ "modernc.org/sqlite"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so repos work in and out of transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the database. Pass "_txlock=immediate" in file DSNs so
// transactions take the write lock up front.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" is a fresh database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users { return &usersRepo{db: s.db} }
func (s *Store) CredentialPolicies() store.CredentialPolicies {
	return &credentialPoliciesRepo{db: s.db}
}
func (s *Store) HashingConfigs() store.HashingConfigs { return &hashingConfigsRepo{db: s.db} }
func (s *Store) CredentialDefinitions() store.CredentialDefinitions {
	return &credentialDefinitionsRepo{db: s.db}
}
func (s *Store) Credentials() store.Credentials             { return &credentialsRepo{db: s.db} }
func (s *Store) CredentialHistory() store.CredentialHistory { return &credentialHistoryRepo{db: s.db} }
func (s *Store) OtpPolicies() store.OtpPolicies             { return &otpPoliciesRepo{db: s.db} }
func (s *Store) OtpDefinitions() store.OtpDefinitions       { return &otpDefinitionsRepo{db: s.db} }
func (s *Store) Otps() store.Otps                           { return &otpsRepo{db: s.db} }
func (s *Store) Operations() store.Operations               { return &operationsRepo{db: s.db} }
func (s *Store) OperationSteps() store.OperationSteps       { return &operationStepsRepo{db: s.db} }
func (s *Store) OperationConfigs() store.OperationConfigs   { return &operationConfigsRepo{db: s.db} }
func (s *Store) MessageLog() store.MessageLog               { return &messageLogRepo{db: s.db} }
func (s *Store) AuthMethods() store.AuthMethods             { return &authMethodsRepo{db: s.db} }
func (s *Store) UserAuthMethods() store.UserAuthMethods     { return &userAuthMethodsRepo{db: s.db} }
func (s *Store) UserContacts() store.UserContacts           { return &userContactsRepo{db: s.db} }

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY constraint failed") {
		return store.ErrAlreadyExists
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return store.ErrReferenced
	}
	return err
}

// requireAffected turns a zero-row UPDATE/DELETE into ErrNotFound.
func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func toMicros(t time.Time) int64 { return t.UTC().UnixMicro() }

func fromMicros(v int64) time.Time { return time.UnixMicro(v).UTC() }

func mapOptionalTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMicros(*t), Valid: true}
}

func mapNullTimePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMicros(v.Int64)
	return &t
}

func mapOptionalInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func mapNullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	val := ns.String
	return &val
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
