package metricsstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsmith/llm-gateway/pkg/metrics"
	"github.com/opsmith/llm-gateway/test/database"
)

// newTestStore builds a store against a fresh schema on the shared test
// database rather than a container per test, keeping the suite fast when
// run with -count=1 across many Insert/GetByRequestID cases.
func newTestStore(t *testing.T) *Store {
	return database.NewTestStore(t)
}

func TestStore_InsertAndGetByRequestID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	score := 55
	rec := metrics.RequestRecord{
		RequestID:            "req-abcdef012345",
		CreatedAt:            now,
		CompletedAt:          now,
		PromptPreview:        "what's the weather like",
		PromptLength:         24,
		ComplexityScore:      40,
		ComplexityConfidence: 0.82,
		DetectedSignals:      []string{"reasoning-keyword", "length"},
		InitialModel:         "gemini-2.0-flash",
		InitialTier:          metrics.TierFast,
		FinalModel:           "gemini-2.0-flash",
		RoutingReasoning:     "Medium complexity (40) - using fast model with quality check",
		QualityScore:         &score,
		LatencyMs:            120,
		TotalLatencyMs:       120,
		PromptTokens:         50,
		CompletionTokens:     80,
		TotalTokens:          130,
		EstimatedCostUSD:     0.00002775,
		ResponsePreview:      "It's sunny today.",
		FinishReason:         "stop",
	}

	require.NoError(t, store.Insert(ctx, rec))

	got, found, err := store.GetByRequestID(ctx, rec.RequestID)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, rec.RequestID, got.RequestID)
	assert.Equal(t, rec.ComplexityScore, got.ComplexityScore)
	assert.Equal(t, rec.InitialTier, got.InitialTier)
	require.NotNil(t, got.QualityScore)
	assert.Equal(t, *rec.QualityScore, *got.QualityScore)
	assert.ElementsMatch(t, rec.DetectedSignals, got.DetectedSignals)
}

func TestStore_InsertIsIdempotentOnRequestID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := metrics.RequestRecord{
		RequestID:  "req-duplicate01",
		CreatedAt:  time.Now().UTC(),
		CompletedAt: time.Now().UTC(),
		FinalModel: "gemini-2.0-flash",
	}

	require.NoError(t, store.Insert(ctx, rec))
	require.NoError(t, store.Insert(ctx, rec))

	_, found, err := store.GetByRequestID(ctx, rec.RequestID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStore_GetByRequestID_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, found, err := store.GetByRequestID(context.Background(), "req-does-not-exist")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Health(t *testing.T) {
	store := newTestStore(t)
	status, err := store.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
}
