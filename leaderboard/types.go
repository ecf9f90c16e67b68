package leaderboard

import (
	"time"

	"github.com/contestadm/backend/scoring"
)

// Contest carries the freeze configuration relevant to standings
// visibility. The builder evaluates frozenness but never masks scores;
// hiding frozen results from viewers is the presentation layer's job.
type Contest struct {
	FreezeTime *time.Time
	Unfreeze   bool
}

// Participant is a user registered for the contest.
type Participant struct {
	UserID   int64
	Username string
}

// Penalty is the upstream-supplied penalty figure for one user on one
// problem. The builder sums it, it does not recompute it.
type Penalty struct {
	SubmitCount int
	Time        int
}

// ProblemRecord is one cell of the leaderboard grid.
type ProblemRecord struct {
	Order           int   `json:"order"`
	ProblemID       int64 `json:"problemId"`
	Score           int   `json:"score"`
	Penalty         int   `json:"penalty"`
	IsFirstSolver   bool  `json:"isFirstSolver"`
	SubmissionCount int   `json:"submissionCount"`
}

// Entry is one ranked row of the leaderboard.
type Entry struct {
	UserID         int64           `json:"userId"`
	Username       string          `json:"username"`
	TotalScore     int             `json:"totalScore"`
	TotalPenalty   int             `json:"totalPenalty"`
	ProblemRecords []ProblemRecord `json:"problemRecords"`
	Rank           int             `json:"rank"`
}

// Standings is the full leaderboard response for one contest.
type Standings struct {
	MaxScore        int     `json:"maxScore"`
	ParticipatedNum int     `json:"participatedNum"`
	RegisteredNum   int     `json:"registeredNum"`
	Leaderboard     []Entry `json:"leaderboard"`
	IsFrozen        bool    `json:"isFrozen"`
}

// Params is the snapshot of contest data a leaderboard is built from.
// All slices are read-only to the builder.
type Params struct {
	Contest       Contest
	Participants  []Participant
	Submissions   []scoring.Submission
	ProblemPoints []scoring.ProblemPoints

	// Penalties maps user id, then problem id, to the penalty supplied
	// by the grading pipeline. May be nil.
	Penalties map[int64]map[int64]Penalty

	// Search filters the ranked rows by username substring. Ranks are
	// assigned before filtering and are not recomputed.
	Search string

	// Now is the instant frozenness is evaluated at.
	Now time.Time
}
