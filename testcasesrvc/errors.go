package testcasesrvc

import (
	"net/http"

	"github.com/contestadm/backend/srvcerror"
)

const ErrCodeInvalidWeightDistribution = "invalid_weight_distribution"

func ErrInvalidWeightDistribution() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidWeightDistribution,
		"manual testcase weights leave no room for the remaining testcases",
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

func ErrInternalSE() *srvcerror.Error {
	return srvcerror.ErrInternalSE()
}
