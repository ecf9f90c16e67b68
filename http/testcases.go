package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/contestadm/backend/httpjson"
	"github.com/contestadm/backend/scoring"
	"github.com/contestadm/backend/testcasesrvc"
)

const defaultPreviewBytes = 5120

func (s *HttpServer) getTestcases(w http.ResponseWriter, r *http.Request) {
	problemID, ok := urlInt64Param(w, r, "problemID")
	if !ok {
		return
	}

	readBytes := defaultPreviewBytes
	if raw := r.URL.Query().Get("readBytes"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			httpjson.WriteErrorJson(w,
				"invalid readBytes parameter",
				http.StatusBadRequest,
				"invalid_url_parameter")
			return
		}
		readBytes = v
	}

	views, err := s.testcaseSrvc.GetTestcases(r.Context(), problemID, readBytes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, views)
}

type testcaseRequest struct {
	Input                  string `json:"input"`
	Output                 string `json:"output"`
	IsHidden               bool   `json:"isHidden"`
	ScoreWeight            *int64 `json:"scoreWeight"`
	ScoreWeightNumerator   *int64 `json:"scoreWeightNumerator"`
	ScoreWeightDenominator *int64 `json:"scoreWeightDenominator"`
}

func (s *HttpServer) putTestcases(w http.ResponseWriter, r *http.Request) {
	problemID, ok := urlInt64Param(w, r, "problemID")
	if !ok {
		return
	}

	var body struct {
		Testcases []testcaseRequest `json:"testcases"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "invalid_request_body")
		return
	}

	inputs := make([]testcasesrvc.TestcaseInput, len(body.Testcases))
	for i, tc := range body.Testcases {
		inputs[i] = testcasesrvc.TestcaseInput{
			Input:    tc.Input,
			Output:   tc.Output,
			IsHidden: tc.IsHidden,
			Weight: scoring.WeightInput{
				ScoreWeight:            tc.ScoreWeight,
				ScoreWeightNumerator:   tc.ScoreWeightNumerator,
				ScoreWeightDenominator: tc.ScoreWeightDenominator,
			},
		}
	}

	stored, err := s.testcaseSrvc.ReplaceTestcases(r.Context(), problemID, inputs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	httpjson.WriteSuccessJson(w, stored)
}
