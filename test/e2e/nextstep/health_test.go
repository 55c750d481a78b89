//go:build e2e

package nextstep_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	auth, _ := clients(t)

	health, err := auth.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = auth.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.Equal(t, "ok", health.Checks.Database)
}
