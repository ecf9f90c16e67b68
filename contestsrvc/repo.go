package contestsrvc

import (
	"context"

	"github.com/contestadm/backend/leaderboard"
	"github.com/contestadm/backend/ordering"
	"github.com/contestadm/backend/scoring"
)

// ContestRepo reads and updates contest rows. Get returns nil without an
// error when the contest does not exist.
type ContestRepo interface {
	Get(ctx context.Context, contestID int64) (*Contest, error)
	SetUnfreeze(ctx context.Context, contestID int64, unfreeze bool) error
}

// SubmissionRepo reads graded submissions. Submissions are owned by the
// judging subsystem; this service never writes them.
type SubmissionRepo interface {
	ListByContest(ctx context.Context, contestID int64) ([]scoring.Submission, error)
	ListByContestUser(ctx context.Context, contestID, userID int64) ([]scoring.Submission, error)
}

// ContestProblemRepo reads and resequences contest problem rows.
//
// UpdateOrders and Remove must apply all given placements in a single
// transaction. A partial application would leave the stored orders
// duplicated or sparse, so any failure must roll back to the prior state.
type ContestProblemRepo interface {
	List(ctx context.Context, contestID int64) ([]ContestProblem, error)
	UpdateOrders(ctx context.Context, contestID int64, placements []ordering.Placement) error
	Remove(ctx context.Context, contestID, problemID int64, compaction []ordering.Placement) error
}

// ContestRecordRepo reads registration records and the penalty figures
// the grading pipeline has attached to them.
type ContestRecordRepo interface {
	ListParticipants(ctx context.Context, contestID int64) ([]leaderboard.Participant, error)
	Penalties(ctx context.Context, contestID int64) (map[int64]map[int64]leaderboard.Penalty, error)
}
