package http

import (
	"encoding/json"
	"net/http"

	"github.com/contestadm/backend/httpjson"
)

func (s *HttpServer) putProblemOrder(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}

	var body struct {
		Order []int64 `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "invalid_request_body")
		return
	}

	updated, err := s.contestSrvc.ReorderProblems(r.Context(), contestID, body.Order)
	if err != nil {
		handleError(w, r, err)
		return
	}

	type problemResponse struct {
		ProblemID int64 `json:"problemId"`
		Score     int   `json:"score"`
		Order     int   `json:"order"`
	}
	response := make([]problemResponse, len(updated))
	for i, cp := range updated {
		response[i] = problemResponse{
			ProblemID: cp.ProblemID,
			Score:     cp.Score,
			Order:     cp.Order,
		}
	}
	httpjson.WriteSuccessJson(w, response)
}

func (s *HttpServer) deleteContestProblem(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}
	problemID, ok := urlInt64Param(w, r, "problemID")
	if !ok {
		return
	}

	if err := s.contestSrvc.RemoveProblem(r.Context(), contestID, problemID); err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, nil)
}
