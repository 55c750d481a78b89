package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01ARZ3NDEKTSV4RRFFQ69G5FA"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(at)
	b := idx.NewAt(at)
	require.Less(t, a.String(), b.String())
	require.Equal(t, at, a.Time())
}
