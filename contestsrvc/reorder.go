package contestsrvc

import (
	"context"
	"sort"

	"github.com/contestadm/backend/ordering"
)

// ReorderProblems resequences the contest's problems to match desired, a
// list of problem ids in their new display order. The permutation is
// validated up front and persisted as one atomic update; on any failure
// no order changes. The updated rows are returned in their new order.
func (s *ContestSrvc) ReorderProblems(ctx context.Context, contestID int64, desired []int64) ([]ContestProblem, error) {
	if err := s.requireContest(ctx, contestID); err != nil {
		return nil, err
	}

	rows, err := s.problems.List(ctx, contestID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	items := make([]ordering.Item, len(rows))
	for i, row := range rows {
		items[i] = ordering.Item{ID: row.ID, ProblemID: row.ProblemID}
	}
	placements, err := ordering.ApplyOrder(items, desired)
	if err != nil {
		return nil, err
	}

	if err := s.problems.UpdateOrders(ctx, contestID, placements); err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}
	s.invalidateStandings(ctx, contestID)
	s.logger.Info("reordered contest problems", "contest_id", contestID, "problems", len(placements))

	updated, err := s.problems.List(ctx, contestID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}
	sort.Slice(updated, func(i, j int) bool { return updated[i].Order < updated[j].Order })
	return updated, nil
}

// RemoveProblem detaches a problem from the contest and closes the gap
// it leaves in the display order, both in one atomic update.
func (s *ContestSrvc) RemoveProblem(ctx context.Context, contestID, problemID int64) error {
	if err := s.requireContest(ctx, contestID); err != nil {
		return err
	}

	rows, err := s.problems.List(ctx, contestID)
	if err != nil {
		return ErrInternalSE().SetDebug(err)
	}

	removed := (*ContestProblem)(nil)
	remaining := make([]ordering.OrderedItem, 0, len(rows))
	for i, row := range rows {
		if row.ProblemID == problemID {
			removed = &rows[i]
			continue
		}
		remaining = append(remaining, ordering.OrderedItem{ID: row.ID, Order: row.Order})
	}
	if removed == nil {
		return ErrContestProblemNotFound()
	}

	compaction := ordering.CompactAfterRemoval(remaining, removed.Order)
	if err := s.problems.Remove(ctx, contestID, problemID, compaction); err != nil {
		return ErrInternalSE().SetDebug(err)
	}
	s.invalidateStandings(ctx, contestID)
	s.logger.Info("removed contest problem", "contest_id", contestID, "problem_id", problemID)
	return nil
}
