package contestsrvc

import (
	"net/http"

	"github.com/contestadm/backend/srvcerror"
)

const ErrCodeContestNotFound = "contest_not_found"

func ErrContestNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFound,
		"contest not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeContestProblemNotFound = "contest_problem_not_found"

func ErrContestProblemNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestProblemNotFound,
		"problem is not part of the contest",
	).SetHttpStatusCode(http.StatusNotFound)
}

func ErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
