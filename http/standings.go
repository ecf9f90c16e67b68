package http

import (
	"net/http"

	"github.com/contestadm/backend/httpjson"
)

func (s *HttpServer) getStandings(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}
	search := r.URL.Query().Get("search")

	standings, err := s.contestSrvc.GetStandings(r.Context(), contestID, search)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, standings)
}
