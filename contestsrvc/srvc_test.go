package contestsrvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contestadm/backend/contestsrvc"
	"github.com/contestadm/backend/leaderboard"
	"github.com/contestadm/backend/ordering"
	"github.com/contestadm/backend/scoring"
	"github.com/contestadm/backend/srvcerror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contestStart = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

const contestID = int64(100)

func newSrvc(t *testing.T) (*contestsrvc.ContestSrvc, *contestsrvc.InMemContestRepo) {
	t.Helper()
	repo := contestsrvc.NewInMemContestRepo()
	repo.AddContest(contestsrvc.Contest{
		ID:        contestID,
		Title:     "Spring Open",
		StartTime: contestStart,
		EndTime:   contestStart.Add(5 * time.Hour),
	})
	srvc := contestsrvc.NewContestSrvc(repo, repo, repo, repo)
	return srvc, repo
}

func subm(userID, problemID int64, result scoring.Result, score int, offset time.Duration) scoring.Submission {
	return scoring.Submission{
		ID:         uuid.New(),
		UserID:     userID,
		ProblemID:  problemID,
		Result:     result,
		Score:      score,
		CreateTime: contestStart.Add(offset),
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr))
	return srvcErr.ErrorCode()
}

func TestGetScoreSummary(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	repo.AddProblem(contestID, 1, 50, 1)
	repo.AddProblem(contestID, 2, 50, 2)
	repo.AddSubmission(contestID, subm(7, 1, scoring.ResultWrongAnswer, 40, 10*time.Minute))
	repo.AddSubmission(contestID, subm(7, 1, scoring.ResultAccepted, 80, 20*time.Minute))

	sum, err := srvc.GetScoreSummary(ctx, contestID, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.SubmittedProblemCount)
	assert.Equal(t, 2, sum.TotalProblemCount)
	assert.Equal(t, 40, sum.UserContestScore)
	assert.Equal(t, 100, sum.ContestPerfectScore)
}

func TestGetScoreSummaryContestNotFound(t *testing.T) {
	srvc, _ := newSrvc(t)

	_, err := srvc.GetScoreSummary(context.Background(), 999, 7)
	require.Error(t, err)
	assert.Equal(t, contestsrvc.ErrCodeContestNotFound, errCode(t, err))
}

func TestGetScoreSummaries(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	repo.AddProblem(contestID, 1, 100, 1)
	repo.AddParticipant(contestID, leaderboard.Participant{UserID: 1, Username: "alice"})
	repo.AddParticipant(contestID, leaderboard.Participant{UserID: 2, Username: "bob"})
	repo.AddSubmission(contestID, subm(1, 1, scoring.ResultAccepted, 100, time.Minute))

	summaries, err := srvc.GetScoreSummaries(ctx, contestID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "alice", summaries[0].Username)
	assert.Equal(t, 100, summaries[0].UserContestScore)
	assert.Equal(t, "bob", summaries[1].Username)
	assert.Zero(t, summaries[1].UserContestScore)
}

func TestTotalScore(t *testing.T) {
	srvc, repo := newSrvc(t)

	repo.AddProblem(contestID, 1, 50, 1)
	repo.AddProblem(contestID, 2, 70, 2)

	total, err := srvc.TotalScore(context.Background(), contestID)
	require.NoError(t, err)
	assert.Equal(t, 120, total)
}

func TestGetStandings(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	repo.AddProblem(contestID, 1, 50, 1)
	repo.AddProblem(contestID, 2, 50, 2)
	repo.AddParticipant(contestID, leaderboard.Participant{UserID: 1, Username: "alice"})
	repo.AddParticipant(contestID, leaderboard.Participant{UserID: 2, Username: "bob"})
	repo.AddSubmission(contestID, subm(1, 1, scoring.ResultAccepted, 100, 10*time.Minute))
	repo.AddSubmission(contestID, subm(2, 1, scoring.ResultWrongAnswer, 20, 15*time.Minute))
	repo.SetPenalty(contestID, 1, 1, leaderboard.Penalty{SubmitCount: 0, Time: 10})

	s, err := srvc.GetStandings(ctx, contestID, "")
	require.NoError(t, err)

	assert.Equal(t, 100, s.MaxScore)
	assert.Equal(t, 2, s.ParticipatedNum)
	assert.Equal(t, 2, s.RegisteredNum)
	require.Len(t, s.Leaderboard, 2)
	assert.Equal(t, "alice", s.Leaderboard[0].Username)
	assert.Equal(t, 50, s.Leaderboard[0].TotalScore)
	assert.Equal(t, 10, s.Leaderboard[0].TotalPenalty)
	assert.True(t, s.Leaderboard[0].ProblemRecords[0].IsFirstSolver)

	t.Run("search filter keeps ranks", func(t *testing.T) {
		s, err := srvc.GetStandings(ctx, contestID, "bob")
		require.NoError(t, err)
		require.Len(t, s.Leaderboard, 1)
		assert.Equal(t, 2, s.Leaderboard[0].Rank)
	})

	t.Run("unknown contest", func(t *testing.T) {
		_, err := srvc.GetStandings(ctx, 999, "")
		require.Error(t, err)
		assert.Equal(t, contestsrvc.ErrCodeContestNotFound, errCode(t, err))
	})
}

// memStandingsStore is an in-process StandingsStore that counts its
// traffic, standing in for the redis-backed cache.
type memStandingsStore struct {
	entries map[int64]leaderboard.Standings
	hits    int
	sets    int
}

func newMemStandingsStore() *memStandingsStore {
	return &memStandingsStore{entries: make(map[int64]leaderboard.Standings)}
}

func (m *memStandingsStore) Get(ctx context.Context, contestID int64) (*leaderboard.Standings, bool) {
	s, ok := m.entries[contestID]
	if !ok {
		return nil, false
	}
	m.hits++
	cached := s
	return &cached, true
}

func (m *memStandingsStore) Set(ctx context.Context, contestID int64, s leaderboard.Standings) error {
	m.sets++
	m.entries[contestID] = s
	return nil
}

func (m *memStandingsStore) Invalidate(ctx context.Context, contestID int64) error {
	delete(m.entries, contestID)
	return nil
}

func TestGetStandingsCached(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	freeze := contestStart.Add(2 * time.Hour)
	repo.AddContest(contestsrvc.Contest{
		ID:         contestID,
		Title:      "Spring Open",
		StartTime:  contestStart,
		EndTime:    contestStart.Add(5 * time.Hour),
		FreezeTime: &freeze,
	})
	repo.AddProblem(contestID, 1, 100, 1)
	repo.AddParticipant(contestID, leaderboard.Participant{UserID: 1, Username: "alice"})
	repo.AddParticipant(contestID, leaderboard.Participant{UserID: 2, Username: "bob"})
	repo.AddSubmission(contestID, subm(1, 1, scoring.ResultAccepted, 100, 10*time.Minute))

	store := newMemStandingsStore()
	srvc.UseStandingsCache(store)

	clock := contestStart.Add(time.Hour)
	srvc.WithClock(func() time.Time { return clock })

	fresh, err := srvc.GetStandings(ctx, contestID, "")
	require.NoError(t, err)
	assert.False(t, fresh.IsFrozen)
	assert.Equal(t, 1, store.sets)
	assert.Equal(t, 0, store.hits)

	t.Run("second read served from cache", func(t *testing.T) {
		cached, err := srvc.GetStandings(ctx, contestID, "")
		require.NoError(t, err)
		assert.Equal(t, 1, store.hits)
		assert.Equal(t, 1, store.sets)
		assert.Equal(t, fresh, cached)
	})

	t.Run("freeze flag recomputed on cache hit", func(t *testing.T) {
		clock = freeze.Add(time.Minute)
		s, err := srvc.GetStandings(ctx, contestID, "")
		require.NoError(t, err)
		assert.Equal(t, 2, store.hits, "still a cache hit")
		assert.True(t, s.IsFrozen, "cached copy predates the freeze")
		assert.Equal(t, fresh.Leaderboard, s.Leaderboard)
	})

	t.Run("search filter applied after cache hit", func(t *testing.T) {
		s, err := srvc.GetStandings(ctx, contestID, "bob")
		require.NoError(t, err)
		require.Len(t, s.Leaderboard, 1)
		assert.Equal(t, 2, s.Leaderboard[0].Rank)
	})

	t.Run("unfreeze invalidates and clears the flag", func(t *testing.T) {
		require.NoError(t, srvc.SetUnfreeze(ctx, contestID, true))
		hitsBefore := store.hits
		s, err := srvc.GetStandings(ctx, contestID, "")
		require.NoError(t, err)
		assert.Equal(t, hitsBefore, store.hits, "entry was invalidated")
		assert.False(t, s.IsFrozen)
	})
}

func TestReorderProblems(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	repo.AddProblem(contestID, 5, 50, 1)
	repo.AddProblem(contestID, 7, 50, 2)
	repo.AddProblem(contestID, 9, 50, 3)

	updated, err := srvc.ReorderProblems(ctx, contestID, []int64{9, 5, 7})
	require.NoError(t, err)
	require.Len(t, updated, 3)
	assert.Equal(t, int64(9), updated[0].ProblemID)
	assert.Equal(t, int64(5), updated[1].ProblemID)
	assert.Equal(t, int64(7), updated[2].ProblemID)
	for i, cp := range updated {
		assert.Equal(t, i+1, cp.Order)
	}
}

func TestReorderProblemsValidation(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	repo.AddProblem(contestID, 5, 50, 1)
	repo.AddProblem(contestID, 7, 50, 2)

	t.Run("length mismatch", func(t *testing.T) {
		_, err := srvc.ReorderProblems(ctx, contestID, []int64{5})
		require.Error(t, err)
		assert.Equal(t, ordering.ErrCodeInvalidOrderLength, errCode(t, err))
	})

	t.Run("not a permutation", func(t *testing.T) {
		_, err := srvc.ReorderProblems(ctx, contestID, []int64{5, 5})
		require.Error(t, err)
		assert.Equal(t, ordering.ErrCodeOrderNotPermutation, errCode(t, err))
	})

	// a rejected reorder leaves stored orders untouched
	rows, err := repo.List(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows[0].Order)
	assert.Equal(t, 2, rows[1].Order)
}

func TestRemoveProblemCompactsOrder(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	repo.AddProblem(contestID, 5, 50, 1)
	repo.AddProblem(contestID, 7, 50, 2)
	repo.AddProblem(contestID, 9, 50, 3)

	require.NoError(t, srvc.RemoveProblem(ctx, contestID, 7))

	rows, err := repo.List(ctx, contestID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byProblem := map[int64]int{}
	for _, row := range rows {
		byProblem[row.ProblemID] = row.Order
	}
	assert.Equal(t, 1, byProblem[5])
	assert.Equal(t, 2, byProblem[9])

	t.Run("problem not in contest", func(t *testing.T) {
		err := srvc.RemoveProblem(ctx, contestID, 404)
		require.Error(t, err)
		assert.Equal(t, contestsrvc.ErrCodeContestProblemNotFound, errCode(t, err))
	})
}

func TestSetUnfreeze(t *testing.T) {
	srvc, repo := newSrvc(t)
	ctx := context.Background()

	freeze := contestStart.Add(2 * time.Hour)
	repo.AddContest(contestsrvc.Contest{ID: contestID, FreezeTime: &freeze})

	require.NoError(t, srvc.SetUnfreeze(ctx, contestID, true))
	c, err := repo.Get(ctx, contestID)
	require.NoError(t, err)
	assert.True(t, c.Unfreeze)
}
