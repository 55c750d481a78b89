package httpx

import "context"

type ctxKey string

const (
	CtxKeySubject ctxKey = "subject"
	CtxKeyScopes  ctxKey = "scopes"
	CtxKeyClaims  ctxKey = "claims"
)

// SubjectFromContext returns the authenticated calling service, if any.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeySubject).(string)
	return s
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}
