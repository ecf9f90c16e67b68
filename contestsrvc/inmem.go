package contestsrvc

import (
	"context"
	"sync"

	"github.com/contestadm/backend/leaderboard"
	"github.com/contestadm/backend/ordering"
	"github.com/contestadm/backend/scoring"
)

// InMemContestRepo is an in-memory implementation of the contest
// repository interfaces, used in tests and local development.
type InMemContestRepo struct {
	mu           sync.RWMutex
	contests     map[int64]Contest
	problems     map[int64][]ContestProblem // by contest id
	subms        map[int64][]scoring.Submission
	participants map[int64][]leaderboard.Participant
	penalties    map[int64]map[int64]map[int64]leaderboard.Penalty
	nextRowID    int64
}

func NewInMemContestRepo() *InMemContestRepo {
	return &InMemContestRepo{
		contests:     make(map[int64]Contest),
		problems:     make(map[int64][]ContestProblem),
		subms:        make(map[int64][]scoring.Submission),
		participants: make(map[int64][]leaderboard.Participant),
		penalties:    make(map[int64]map[int64]map[int64]leaderboard.Penalty),
		nextRowID:    1,
	}
}

func (r *InMemContestRepo) AddContest(c Contest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contests[c.ID] = c
}

func (r *InMemContestRepo) AddProblem(contestID, problemID int64, score, order int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.problems[contestID] = append(r.problems[contestID], ContestProblem{
		ID:        r.nextRowID,
		ContestID: contestID,
		ProblemID: problemID,
		Score:     score,
		Order:     order,
	})
	r.nextRowID++
}

func (r *InMemContestRepo) AddSubmission(contestID int64, sub scoring.Submission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ContestID = &contestID
	r.subms[contestID] = append(r.subms[contestID], sub)
}

func (r *InMemContestRepo) AddParticipant(contestID int64, p leaderboard.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[contestID] = append(r.participants[contestID], p)
}

func (r *InMemContestRepo) SetPenalty(contestID, userID, problemID int64, pen leaderboard.Penalty) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.penalties[contestID] == nil {
		r.penalties[contestID] = make(map[int64]map[int64]leaderboard.Penalty)
	}
	if r.penalties[contestID][userID] == nil {
		r.penalties[contestID][userID] = make(map[int64]leaderboard.Penalty)
	}
	r.penalties[contestID][userID][problemID] = pen
}

// Get implements ContestRepo
func (r *InMemContestRepo) Get(ctx context.Context, contestID int64) (*Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.contests[contestID]; ok {
		return &c, nil
	}
	return nil, nil
}

// SetUnfreeze implements ContestRepo
func (r *InMemContestRepo) SetUnfreeze(ctx context.Context, contestID int64, unfreeze bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.contests[contestID]
	c.Unfreeze = unfreeze
	r.contests[contestID] = c
	return nil
}

// List implements ContestProblemRepo
func (r *InMemContestRepo) List(ctx context.Context, contestID int64) ([]ContestProblem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]ContestProblem, len(r.problems[contestID]))
	copy(rows, r.problems[contestID])
	return rows, nil
}

// UpdateOrders implements ContestProblemRepo; all placements are applied
// under one lock, mirroring the transactional pg behavior.
func (r *InMemContestRepo) UpdateOrders(ctx context.Context, contestID int64, placements []ordering.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.problems[contestID]
	for _, p := range placements {
		for i := range rows {
			if rows[i].ID == p.ID {
				rows[i].Order = p.NewOrder
			}
		}
	}
	return nil
}

// Remove implements ContestProblemRepo
func (r *InMemContestRepo) Remove(ctx context.Context, contestID, problemID int64, compaction []ordering.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.problems[contestID]
	kept := rows[:0]
	for _, row := range rows {
		if row.ProblemID != problemID {
			kept = append(kept, row)
		}
	}
	for _, p := range compaction {
		for i := range kept {
			if kept[i].ID == p.ID {
				kept[i].Order = p.NewOrder
			}
		}
	}
	r.problems[contestID] = kept
	return nil
}

// ListByContest implements SubmissionRepo
func (r *InMemContestRepo) ListByContest(ctx context.Context, contestID int64) ([]scoring.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]scoring.Submission, len(r.subms[contestID]))
	copy(subs, r.subms[contestID])
	return subs, nil
}

// ListByContestUser implements SubmissionRepo
func (r *InMemContestRepo) ListByContestUser(ctx context.Context, contestID, userID int64) ([]scoring.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var subs []scoring.Submission
	for _, s := range r.subms[contestID] {
		if s.UserID == userID {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

// ListParticipants implements ContestRecordRepo
func (r *InMemContestRepo) ListParticipants(ctx context.Context, contestID int64) ([]leaderboard.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parts := make([]leaderboard.Participant, len(r.participants[contestID]))
	copy(parts, r.participants[contestID])
	return parts, nil
}

// Penalties implements ContestRecordRepo
func (r *InMemContestRepo) Penalties(ctx context.Context, contestID int64) (map[int64]map[int64]leaderboard.Penalty, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int64]map[int64]leaderboard.Penalty)
	for userID, byProblem := range r.penalties[contestID] {
		out[userID] = make(map[int64]leaderboard.Penalty, len(byProblem))
		for problemID, pen := range byProblem {
			out[userID][problemID] = pen
		}
	}
	return out, nil
}
