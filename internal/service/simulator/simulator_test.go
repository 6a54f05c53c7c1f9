package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/transformer-sentry/internal/domain/safety"
)

// TestGenerator_NextProducesDecodableDocuments verifies generated documents
// stay within plausible ranges and decode into snapshots.
func TestGenerator_NextProducesDecodableDocuments(t *testing.T) {
	t.Parallel()

	g := NewGenerator(42)

	sawDistance := false

	for i := 0; i < 200; i++ {
		doc := g.Next()
		s := safety.SnapshotFromDocument(doc)

		require.NotNil(t, s.TemperatureC)
		require.GreaterOrEqual(t, *s.TemperatureC, 15.0)
		require.LessOrEqual(t, *s.TemperatureC, 90.0)

		require.NotNil(t, s.CurrentA)
		require.GreaterOrEqual(t, *s.CurrentA, 0.0)
		require.LessOrEqual(t, *s.CurrentA, 5.0)

		if s.DistanceCM != nil {
			sawDistance = true

			require.Greater(t, *s.DistanceCM, 0.0)
		}
	}

	// The dropout chance is 10%, so 200 cycles must include readings.
	require.True(t, sawDistance)
}

// TestGenerator_Deterministic verifies the same seed replays the same feed.
func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := NewGenerator(7), NewGenerator(7)

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}
