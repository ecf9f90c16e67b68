// Package contestsrvc is the contest administration service. It fetches
// snapshots of contest data through its repositories and runs the pure
// scoring, ordering and leaderboard logic over them; it holds no scoring
// rules of its own.
package contestsrvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/contestadm/backend/leaderboard"
	"github.com/contestadm/backend/logger"
)

// StandingsStore caches built, unfiltered standings per contest. A miss
// is reported as ok=false; Set and Invalidate failures are surfaced so
// the service can log them, but the store is never the source of truth.
type StandingsStore interface {
	Get(ctx context.Context, contestID int64) (*leaderboard.Standings, bool)
	Set(ctx context.Context, contestID int64, standings leaderboard.Standings) error
	Invalidate(ctx context.Context, contestID int64) error
}

type ContestSrvc struct {
	logger *slog.Logger

	contests ContestRepo
	problems ContestProblemRepo
	subms    SubmissionRepo
	records  ContestRecordRepo

	standingsCache StandingsStore // optional

	now func() time.Time
}

func NewContestSrvc(
	contests ContestRepo,
	problems ContestProblemRepo,
	subms SubmissionRepo,
	records ContestRecordRepo,
) *ContestSrvc {
	return &ContestSrvc{
		logger:   logger.ForModule("contest"),
		contests: contests,
		problems: problems,
		subms:    subms,
		records:  records,
		now:      time.Now,
	}
}

// UseStandingsCache enables read-through caching of built standings.
// Cached standings are never the source of truth: every entry expires
// and mutations invalidate eagerly.
func (s *ContestSrvc) UseStandingsCache(c StandingsStore) {
	s.standingsCache = c
}

// WithClock replaces the service's time source, used by tests that cross
// the freeze boundary.
func (s *ContestSrvc) WithClock(now func() time.Time) {
	s.now = now
}
