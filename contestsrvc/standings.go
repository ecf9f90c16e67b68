package contestsrvc

import (
	"context"

	"github.com/contestadm/backend/leaderboard"
)

// GetStandings builds the ranked leaderboard for a contest. The unfiltered
// standings may be served from the cache; the search filter is applied
// after ranking either way, so cached and fresh results agree.
func (s *ContestSrvc) GetStandings(ctx context.Context, contestID int64, search string) (leaderboard.Standings, error) {
	contest, err := s.contests.Get(ctx, contestID)
	if err != nil {
		return leaderboard.Standings{}, ErrInternalSE().SetDebug(err)
	}
	if contest == nil {
		return leaderboard.Standings{}, ErrContestNotFound()
	}

	if s.standingsCache != nil {
		if cached, ok := s.standingsCache.Get(ctx, contestID); ok {
			// The freeze flag is point-in-time; a cached copy may have
			// been built on the other side of the freeze boundary.
			cached.IsFrozen = leaderboard.IsFrozen(leaderboard.Contest{
				FreezeTime: contest.FreezeTime,
				Unfreeze:   contest.Unfreeze,
			}, s.now())
			return leaderboard.Filter(*cached, search), nil
		}
	}

	rows, err := s.problems.List(ctx, contestID)
	if err != nil {
		return leaderboard.Standings{}, ErrInternalSE().SetDebug(err)
	}
	participants, err := s.records.ListParticipants(ctx, contestID)
	if err != nil {
		return leaderboard.Standings{}, ErrInternalSE().SetDebug(err)
	}
	subs, err := s.subms.ListByContest(ctx, contestID)
	if err != nil {
		return leaderboard.Standings{}, ErrInternalSE().SetDebug(err)
	}
	penalties, err := s.records.Penalties(ctx, contestID)
	if err != nil {
		return leaderboard.Standings{}, ErrInternalSE().SetDebug(err)
	}

	standings := leaderboard.Build(leaderboard.Params{
		Contest: leaderboard.Contest{
			FreezeTime: contest.FreezeTime,
			Unfreeze:   contest.Unfreeze,
		},
		Participants:  participants,
		Submissions:   subs,
		ProblemPoints: points(rows),
		Penalties:     penalties,
		Now:           s.now(),
	})

	if s.standingsCache != nil {
		if err := s.standingsCache.Set(ctx, contestID, standings); err != nil {
			s.logger.Warn("failed to cache standings", "contest_id", contestID, "error", err)
		}
	}

	return leaderboard.Filter(standings, search), nil
}

// SetUnfreeze toggles the contest's unfreeze flag, revealing or hiding
// post-freeze standings for general viewers.
func (s *ContestSrvc) SetUnfreeze(ctx context.Context, contestID int64, unfreeze bool) error {
	if err := s.requireContest(ctx, contestID); err != nil {
		return err
	}
	if err := s.contests.SetUnfreeze(ctx, contestID, unfreeze); err != nil {
		return ErrInternalSE().SetDebug(err)
	}
	s.invalidateStandings(ctx, contestID)
	return nil
}

func (s *ContestSrvc) invalidateStandings(ctx context.Context, contestID int64) {
	if s.standingsCache == nil {
		return
	}
	if err := s.standingsCache.Invalidate(ctx, contestID); err != nil {
		s.logger.Warn("failed to invalidate standings cache", "contest_id", contestID, "error", err)
	}
}
