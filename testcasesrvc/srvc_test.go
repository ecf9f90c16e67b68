package testcasesrvc_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/contestadm/backend/scoring"
	"github.com/contestadm/backend/srvcerror"
	"github.com/contestadm/backend/testcasesrvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func newSrvc(t *testing.T) (*testcasesrvc.TestcaseSrvc, *testcasesrvc.InMemObjectStorage) {
	t.Helper()
	storage := testcasesrvc.NewInMemObjectStorage()
	srvc := testcasesrvc.NewTestcaseSrvc(testcasesrvc.NewInMemTestcaseRepo(), storage)
	return srvc, storage
}

func TestReplaceTestcasesExplicitWeights(t *testing.T) {
	srvc, _ := newSrvc(t)
	ctx := context.Background()

	stored, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "1 2", Output: "3", Weight: scoring.WeightInput{ScoreWeight: i64(30)}},
		{Input: "4 5", Output: "9", IsHidden: true, Weight: scoring.WeightInput{
			ScoreWeightNumerator: i64(7), ScoreWeightDenominator: i64(10),
		}},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, scoring.Fraction{Num: 30, Den: 100}, stored[0].Weight)
	assert.Equal(t, 30, stored[0].ScoreWeight)
	assert.Equal(t, 1, stored[0].Order)
	assert.False(t, stored[0].IsHidden)

	assert.Equal(t, scoring.Fraction{Num: 7, Den: 10}, stored[1].Weight)
	assert.Equal(t, 70, stored[1].ScoreWeight)
	assert.Equal(t, 2, stored[1].Order)
	assert.True(t, stored[1].IsHidden)
}

func TestReplaceTestcasesEqualDistribution(t *testing.T) {
	srvc, _ := newSrvc(t)
	ctx := context.Background()

	stored, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "a", Output: "b"},
		{Input: "c", Output: "d"},
		{Input: "e", Output: "f"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, tc := range stored {
		assert.Equal(t, scoring.Fraction{Num: 1, Den: 3}, tc.Weight)
		assert.Equal(t, 33, tc.ScoreWeight)
	}
}

func TestReplaceTestcasesMixedWeights(t *testing.T) {
	srvc, _ := newSrvc(t)
	ctx := context.Background()

	stored, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "a", Output: "b"}, // unweighted, gets half of the leftover
		{Input: "c", Output: "d", Weight: scoring.WeightInput{
			ScoreWeightNumerator: i64(1), ScoreWeightDenominator: i64(2),
		}},
		{Input: "e", Output: "f"}, // unweighted
	})
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// positions are preserved: the manual weight stays in the middle
	assert.Equal(t, scoring.Fraction{Num: 1, Den: 4}, stored[0].Weight)
	assert.Equal(t, scoring.Fraction{Num: 1, Den: 2}, stored[1].Weight)
	assert.Equal(t, scoring.Fraction{Num: 1, Den: 4}, stored[2].Weight)
}

func TestReplaceTestcasesWeightOverflow(t *testing.T) {
	srvc, _ := newSrvc(t)
	ctx := context.Background()

	_, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "a", Output: "b", Weight: scoring.WeightInput{ScoreWeight: i64(100)}},
		{Input: "c", Output: "d"},
	})
	require.Error(t, err)

	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr))
	assert.Equal(t, testcasesrvc.ErrCodeInvalidWeightDistribution, srvcErr.ErrorCode())
}

func TestGetTestcases(t *testing.T) {
	srvc, _ := newSrvc(t)
	ctx := context.Background()

	longInput := strings.Repeat("x", 100)
	_, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: longInput, Output: "short"},
	})
	require.NoError(t, err)

	t.Run("truncated preview", func(t *testing.T) {
		views, err := srvc.GetTestcases(ctx, 42, 10)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, strings.Repeat("x", 10), views[0].Input)
		assert.Equal(t, "short", views[0].Output)
		assert.True(t, views[0].IsTruncated)
	})

	t.Run("full read", func(t *testing.T) {
		views, err := srvc.GetTestcases(ctx, 42, 5120)
		require.NoError(t, err)
		assert.Equal(t, longInput, views[0].Input)
		assert.False(t, views[0].IsTruncated)
	})

	t.Run("unknown problem yields empty list", func(t *testing.T) {
		views, err := srvc.GetTestcases(ctx, 999, 5120)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

// flakyStorage fails uploads once its budget is spent.
type flakyStorage struct {
	*testcasesrvc.InMemObjectStorage
	remaining int
}

func (f *flakyStorage) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	if f.remaining == 0 {
		return "", errors.New("storage unavailable")
	}
	f.remaining--
	return f.InMemObjectStorage.Upload(ctx, content, key, mediaType)
}

func TestReplaceRestoresPreviousSetOnStorageFailure(t *testing.T) {
	storage := &flakyStorage{
		InMemObjectStorage: testcasesrvc.NewInMemObjectStorage(),
		remaining:          4,
	}
	srvc := testcasesrvc.NewTestcaseSrvc(testcasesrvc.NewInMemTestcaseRepo(), storage)
	ctx := context.Background()

	first, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "in-1", Output: "out-1"},
		{Input: "in-2", Output: "out-2"},
	})
	require.NoError(t, err)
	require.Len(t, first, 2)

	// the next replace dies on its third body upload
	storage.remaining = 2
	_, err = srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "new-1", Output: "new-out-1"},
		{Input: "new-2", Output: "new-out-2"},
	})
	require.Error(t, err)

	// the problem reads exactly as before the failed replace
	views, err := srvc.GetTestcases(ctx, 42, 5120)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, first[0].ID, views[0].ID)
	assert.Equal(t, "in-1", views[0].Input)
	assert.Equal(t, "out-2", views[1].Output)
}

func TestReplaceDropsPreviousBodies(t *testing.T) {
	srvc, storage := newSrvc(t)
	ctx := context.Background()

	_, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "old-in", Output: "old-out"},
		{Input: "old-in-2", Output: "old-out-2"},
	})
	require.NoError(t, err)

	stored, err := srvc.ReplaceTestcases(ctx, 42, []testcasesrvc.TestcaseInput{
		{Input: "new-in", Output: "new-out"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	views, err := srvc.GetTestcases(ctx, 42, 5120)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "new-in", views[0].Input)

	// only the two fresh objects remain
	_, err = storage.Download(ctx, "42/1.in")
	assert.Error(t, err)
}
