package contestsrvc

import (
	"time"

	"github.com/contestadm/backend/scoring"
)

// Contest is the administrative view of a contest.
type Contest struct {
	ID         int64
	Title      string
	StartTime  time.Time
	EndTime    time.Time
	FreezeTime *time.Time
	Unfreeze   bool
}

// ContestProblem associates a problem with a contest, carrying the point
// value and 1-based display order the problem has inside that contest.
type ContestProblem struct {
	ID        int64
	ContestID int64
	ProblemID int64
	Score     int
	Order     int
}

// Points is the scoring view of a contest problem row.
func (cp ContestProblem) Points() scoring.ProblemPoints {
	return scoring.ProblemPoints{ProblemID: cp.ProblemID, Score: cp.Score, Order: cp.Order}
}

// UserScoreSummary is one participant's score summary together with
// their identity, used in the all-participants listing.
type UserScoreSummary struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	scoring.ScoreSummary
}
