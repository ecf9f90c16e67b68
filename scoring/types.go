package scoring

import (
	"time"

	"github.com/google/uuid"
)

// Result is the graded outcome of a submission.
type Result string

const (
	ResultAccepted            Result = "Accepted"
	ResultWrongAnswer         Result = "WrongAnswer"
	ResultTimeLimitExceeded   Result = "TimeLimitExceeded"
	ResultMemoryLimitExceeded Result = "MemoryLimitExceeded"
	ResultRuntimeError        Result = "RuntimeError"
	ResultCompileError        Result = "CompileError"
	ResultServerError         Result = "ServerError"
	ResultJudging             Result = "Judging"
)

// Submission is one graded code submission. Submissions are append-only
// and owned by the judging subsystem; this package only reads them.
// Score is the weight-adjusted percentage of testcases passed, 0..100.
type Submission struct {
	ID         uuid.UUID
	UserID     int64
	ProblemID  int64
	ContestID  *int64
	Result     Result
	Score      int
	CreateTime time.Time
}

// ProblemPoints is the point value and display order a problem carries
// within one contest. Order values form a permutation of 1..N.
type ProblemPoints struct {
	ProblemID int64
	Score     int
	Order     int
}

// ProblemScore is the awarded and maximum score for a single problem.
type ProblemScore struct {
	ProblemID int64 `json:"problemId"`
	Score     int   `json:"score"`
	MaxScore  int   `json:"maxScore"`
}

// ScoreSummary aggregates one user's standing in one contest. It is
// derived on demand from submissions and problem points, never stored.
type ScoreSummary struct {
	SubmittedProblemCount int            `json:"submittedProblemCount"`
	TotalProblemCount     int            `json:"totalProblemCount"`
	UserContestScore      int            `json:"userContestScore"`
	ContestPerfectScore   int            `json:"contestPerfectScore"`
	ProblemScores         []ProblemScore `json:"problemScores"`
}
