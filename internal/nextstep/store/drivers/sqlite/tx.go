package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil } // outer DB stays open
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users { return &usersRepo{db: t.tx} }
func (t *txStore) CredentialPolicies() store.CredentialPolicies {
	return &credentialPoliciesRepo{db: t.tx}
}
func (t *txStore) HashingConfigs() store.HashingConfigs { return &hashingConfigsRepo{db: t.tx} }
func (t *txStore) CredentialDefinitions() store.CredentialDefinitions {
	return &credentialDefinitionsRepo{db: t.tx}
}
func (t *txStore) Credentials() store.Credentials { return &credentialsRepo{db: t.tx} }
func (t *txStore) CredentialHistory() store.CredentialHistory {
	return &credentialHistoryRepo{db: t.tx}
}
func (t *txStore) OtpPolicies() store.OtpPolicies           { return &otpPoliciesRepo{db: t.tx} }
func (t *txStore) OtpDefinitions() store.OtpDefinitions     { return &otpDefinitionsRepo{db: t.tx} }
func (t *txStore) Otps() store.Otps                         { return &otpsRepo{db: t.tx} }
func (t *txStore) Operations() store.Operations             { return &operationsRepo{db: t.tx} }
func (t *txStore) OperationSteps() store.OperationSteps     { return &operationStepsRepo{db: t.tx} }
func (t *txStore) OperationConfigs() store.OperationConfigs { return &operationConfigsRepo{db: t.tx} }
func (t *txStore) MessageLog() store.MessageLog             { return &messageLogRepo{db: t.tx} }
func (t *txStore) AuthMethods() store.AuthMethods           { return &authMethodsRepo{db: t.tx} }
func (t *txStore) UserAuthMethods() store.UserAuthMethods   { return &userAuthMethodsRepo{db: t.tx} }
func (t *txStore) UserContacts() store.UserContacts         { return &userContactsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
