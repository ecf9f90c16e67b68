package testcasesrvc

import "github.com/contestadm/backend/scoring"

// Testcase is the stored metadata of one testcase. The input and output
// bodies live in object storage under <problemID>/<id>.in and .out; only
// the weight and ordering live in the database.
type Testcase struct {
	ID        int64 `json:"id"`
	ProblemID int64 `json:"problemId"`
	Order     int   `json:"order"`
	IsHidden  bool  `json:"isHidden"`

	// Weight is the exact canonical fraction; ScoreWeight is its
	// rounded percentage kept for display and for submission scoring.
	Weight      scoring.Fraction `json:"weight"`
	ScoreWeight int              `json:"scoreWeight"`
}

// TestcaseInput is one testcase as submitted by an administrator.
// Weight may be empty, in which case the testcase takes an equal share
// of whatever weight the explicitly weighted testcases leave over.
type TestcaseInput struct {
	Input    string
	Output   string
	IsHidden bool
	Weight   scoring.WeightInput
}

// TestcaseView is a testcase with previews of its bodies, truncated to
// the requested byte count.
type TestcaseView struct {
	Testcase
	Input       string `json:"input"`
	Output      string `json:"output"`
	IsTruncated bool   `json:"isTruncated"`
}
