package ordering

import (
	"fmt"
	"net/http"

	"github.com/contestadm/backend/srvcerror"
)

const ErrCodeInvalidOrderLength = "invalid_order_length"

func ErrInvalidOrderLength(want, got int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidOrderLength,
		fmt.Sprintf("desired order has %d entries, expected %d", got, want),
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}

const ErrCodeOrderNotPermutation = "order_not_permutation"

func ErrOrderNotPermutation() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeOrderNotPermutation,
		"desired order must contain every problem exactly once",
	).SetHttpStatusCode(http.StatusUnprocessableEntity)
}
