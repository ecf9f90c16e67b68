package http

import (
	"net/http"

	"github.com/contestadm/backend/httpjson"
)

func (s *HttpServer) getScoreSummary(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}
	userID, ok := urlInt64Param(w, r, "userID")
	if !ok {
		return
	}

	summary, err := s.contestSrvc.GetScoreSummary(r.Context(), contestID, userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, summary)
}

func (s *HttpServer) getScoreSummaries(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}

	summaries, err := s.contestSrvc.GetScoreSummaries(r.Context(), contestID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, summaries)
}

func (s *HttpServer) getTotalScore(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}

	total, err := s.contestSrvc.TotalScore(r.Context(), contestID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	type totalScoreResponse struct {
		TotalScore int `json:"totalScore"`
	}
	httpjson.WriteSuccessJson(w, totalScoreResponse{TotalScore: total})
}
