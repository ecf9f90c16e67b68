// Package testcasesrvc manages problem testcases: weight
// canonicalization on write, metadata rows in postgres and testcase
// bodies in object storage.
package testcasesrvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/contestadm/backend/logger"
	"github.com/contestadm/backend/scoring"
)

// TestcaseRepo persists testcase metadata. ReplaceAll swaps a problem's
// whole testcase set atomically and returns the rows with assigned ids;
// rows carrying a non-zero ID keep it, so a previous set can be restored
// verbatim.
type TestcaseRepo interface {
	ReplaceAll(ctx context.Context, problemID int64, rows []Testcase) ([]Testcase, error)
	List(ctx context.Context, problemID int64) ([]Testcase, error)
}

// ObjectStorage stores testcase bodies, keyed <problemID>/<id>.in|.out.
type ObjectStorage interface {
	Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

type TestcaseSrvc struct {
	logger  *slog.Logger
	repo    TestcaseRepo
	storage ObjectStorage
}

func NewTestcaseSrvc(repo TestcaseRepo, storage ObjectStorage) *TestcaseSrvc {
	return &TestcaseSrvc{
		logger:  logger.ForModule("testcase"),
		repo:    repo,
		storage: storage,
	}
}

// ReplaceTestcases replaces a problem's testcase set. Explicit weight
// declarations are canonicalized as given; testcases without one share
// the leftover weight equally. The exact fractions of the final set sum
// to one; percentages are rounded only for the stored ScoreWeight.
func (s *TestcaseSrvc) ReplaceTestcases(ctx context.Context, problemID int64, inputs []TestcaseInput) ([]Testcase, error) {
	fracs, err := resolveWeights(inputs)
	if err != nil {
		if errors.Is(err, scoring.ErrWeightOverflow) {
			return nil, ErrInvalidWeightDistribution().SetDebug(err)
		}
		return nil, ErrInternalSE().SetDebug(err)
	}

	rows := make([]Testcase, len(inputs))
	for i, in := range inputs {
		rows[i] = Testcase{
			ProblemID:   problemID,
			Order:       i + 1,
			IsHidden:    in.IsHidden,
			Weight:      fracs[i],
			ScoreWeight: fracs[i].Percent(),
		}
	}

	// The previous rows are the rollback target if storage fails below.
	prev, err := s.repo.List(ctx, problemID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	stored, err := s.repo.ReplaceAll(ctx, problemID, rows)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	// New bodies go in under the freshly assigned ids, which never
	// collide with the previous set's keys. The old bodies stay intact
	// until every new body is written, so a storage failure can be
	// undone by restoring the previous rows.
	uploaded := make([]string, 0, len(stored)*2)
	for i, tc := range stored {
		for _, obj := range []struct {
			key     string
			content string
		}{
			{inputKey(problemID, tc.ID), inputs[i].Input},
			{outputKey(problemID, tc.ID), inputs[i].Output},
		} {
			if _, err := s.storage.Upload(ctx, []byte(obj.content), obj.key, "text/plain"); err != nil {
				s.undoReplace(ctx, problemID, prev, uploaded)
				return nil, ErrInternalSE().SetDebug(err)
			}
			uploaded = append(uploaded, obj.key)
		}
	}

	s.removeStaleObjects(ctx, problemID, stored)

	s.logger.Info("replaced testcases", "problem_id", problemID, "count", len(stored))
	return stored, nil
}

// undoReplace restores the previous metadata rows and drops the bodies
// written so far. The previous bodies were never touched, so after a
// successful undo the problem reads exactly as before the failed
// replace.
func (s *TestcaseSrvc) undoReplace(ctx context.Context, problemID int64, prev []Testcase, uploaded []string) {
	if _, err := s.repo.ReplaceAll(ctx, problemID, prev); err != nil {
		s.logger.Error("failed to restore testcases after storage failure",
			"problem_id", problemID, "error", err)
		return
	}
	for _, key := range uploaded {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to drop orphaned testcase object", "key", key, "error", err)
		}
	}
}

// removeStaleObjects drops every object under the problem's prefix that
// does not belong to the current testcase set. A failure here only leaks
// storage, so it is logged and not returned.
func (s *TestcaseSrvc) removeStaleObjects(ctx context.Context, problemID int64, current []Testcase) {
	keys, err := s.storage.ListKeys(ctx, objectPrefix(problemID))
	if err != nil {
		s.logger.Warn("failed to list testcase objects", "problem_id", problemID, "error", err)
		return
	}
	live := make(map[string]bool, len(current)*2)
	for _, tc := range current {
		live[inputKey(problemID, tc.ID)] = true
		live[outputKey(problemID, tc.ID)] = true
	}
	for _, key := range keys {
		if live[key] {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to drop stale testcase object", "key", key, "error", err)
		}
	}
}

// GetTestcases returns the problem's testcases with body previews of at
// most readBytes bytes each.
func (s *TestcaseSrvc) GetTestcases(ctx context.Context, problemID int64, readBytes int) ([]TestcaseView, error) {
	rows, err := s.repo.List(ctx, problemID)
	if err != nil {
		return nil, ErrInternalSE().SetDebug(err)
	}

	views := make([]TestcaseView, 0, len(rows))
	for _, tc := range rows {
		input, err := s.storage.Download(ctx, inputKey(problemID, tc.ID))
		if err != nil {
			return nil, ErrInternalSE().SetDebug(err)
		}
		output, err := s.storage.Download(ctx, outputKey(problemID, tc.ID))
		if err != nil {
			return nil, ErrInternalSE().SetDebug(err)
		}

		truncated := len(input) > readBytes || len(output) > readBytes
		views = append(views, TestcaseView{
			Testcase:    tc,
			Input:       string(truncate(input, readBytes)),
			Output:      string(truncate(output, readBytes)),
			IsTruncated: truncated,
		})
	}
	return views, nil
}

// resolveWeights canonicalizes explicit weights and distributes the
// remainder over the unweighted testcases, preserving input positions.
func resolveWeights(inputs []TestcaseInput) ([]scoring.Fraction, error) {
	manual := make([]scoring.Fraction, 0, len(inputs))
	for _, in := range inputs {
		if hasWeight(in.Weight) {
			manual = append(manual, scoring.Canonicalize(in.Weight))
		}
	}

	// Fully explicit sets are stored as declared; distribution only
	// kicks in when some testcases carry no weight.
	if len(manual) == len(inputs) {
		return manual, nil
	}

	distributed, err := scoring.DistributeRemaining(len(inputs), manual)
	if err != nil {
		return nil, err
	}

	// DistributeRemaining appends the shared fractions after the manual
	// ones; map them back onto the unweighted positions.
	fracs := make([]scoring.Fraction, len(inputs))
	nextManual, nextShared := 0, len(manual)
	for i, in := range inputs {
		if hasWeight(in.Weight) {
			fracs[i] = distributed[nextManual]
			nextManual++
		} else {
			fracs[i] = distributed[nextShared]
			nextShared++
		}
	}
	return fracs, nil
}

func hasWeight(w scoring.WeightInput) bool {
	return w.ScoreWeight != nil || w.ScoreWeightNumerator != nil || w.ScoreWeightDenominator != nil
}

func objectPrefix(problemID int64) string {
	return fmt.Sprintf("%d/", problemID)
}

func inputKey(problemID, testcaseID int64) string {
	return fmt.Sprintf("%d/%d.in", problemID, testcaseID)
}

func outputKey(problemID, testcaseID int64) string {
	return fmt.Sprintf("%d/%d.out", problemID, testcaseID)
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
