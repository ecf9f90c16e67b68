package http

import (
	"encoding/json"
	"net/http"

	"github.com/contestadm/backend/httpjson"
)

func (s *HttpServer) patchUnfreeze(w http.ResponseWriter, r *http.Request) {
	contestID, ok := urlInt64Param(w, r, "contestID")
	if !ok {
		return
	}

	var body struct {
		Unfreeze bool `json:"unfreeze"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "invalid_request_body")
		return
	}

	if err := s.contestSrvc.SetUnfreeze(r.Context(), contestID, body.Unfreeze); err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, nil)
}
