package contestsrvc

import (
	"context"
	"sort"

	"github.com/contestadm/backend/scoring"
)

// GetScoreSummary computes one user's score summary for a contest from a
// fresh snapshot of their submissions and the contest's problem points.
func (s *ContestSrvc) GetScoreSummary(ctx context.Context, contestID, userID int64) (scoring.ScoreSummary, error) {
	if err := s.requireContest(ctx, contestID); err != nil {
		return scoring.ScoreSummary{}, err
	}

	rows, err := s.problems.List(ctx, contestID)
	if err != nil {
		return scoring.ScoreSummary{}, ErrInternalSE().SetDebug(err)
	}
	subs, err := s.subms.ListByContestUser(ctx, contestID, userID)
	if err != nil {
		return scoring.ScoreSummary{}, ErrInternalSE().SetDebug(err)
	}

	return scoring.Reduce(subs, points(rows)), nil
}

// GetScoreSummaries computes summaries for every registered participant,
// from one submission snapshot shared across users.
func (s *ContestSrvc) GetScoreSummaries(ctx context.Context, contestID int64) ([]UserScoreSummary, error) {
	if err := s.requireContest(ctx, contestID); err != nil {
		return nil, err
	}

	rows, err := s.problems.List(ctx, contestID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}
	participants, err := s.records.ListParticipants(ctx, contestID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}
	subs, err := s.subms.ListByContest(ctx, contestID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	byUser := make(map[int64][]scoring.Submission)
	for _, sub := range subs {
		byUser[sub.UserID] = append(byUser[sub.UserID], sub)
	}

	pts := points(rows)
	summaries := make([]UserScoreSummary, 0, len(participants))
	for _, part := range participants {
		summaries = append(summaries, UserScoreSummary{
			UserID:       part.UserID,
			Username:     part.Username,
			ScoreSummary: scoring.Reduce(byUser[part.UserID], pts),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UserID < summaries[j].UserID
	})
	return summaries, nil
}

// TotalScore is the perfect score of the contest, the sum of all its
// problems' point values.
func (s *ContestSrvc) TotalScore(ctx context.Context, contestID int64) (int, error) {
	if err := s.requireContest(ctx, contestID); err != nil {
		return 0, err
	}

	rows, err := s.problems.List(ctx, contestID)
	if err != nil {
		return 0, ErrInternalSE().SetDebug(err)
	}
	total := 0
	for _, row := range rows {
		total += row.Score
	}
	return total, nil
}

func (s *ContestSrvc) requireContest(ctx context.Context, contestID int64) error {
	contest, err := s.contests.Get(ctx, contestID)
	if err != nil {
		return ErrInternalSE().SetDebug(err)
	}
	if contest == nil {
		return ErrContestNotFound()
	}
	return nil
}

func points(rows []ContestProblem) []scoring.ProblemPoints {
	pts := make([]scoring.ProblemPoints, len(rows))
	for i, row := range rows {
		pts[i] = row.Points()
	}
	return pts
}
