// Package leaderboard ranks contest participants from a snapshot of
// their submissions and the contest's problem point values.
package leaderboard

import (
	"sort"
	"strings"
	"time"

	"github.com/contestadm/backend/scoring"
)

// Build composes per-user score reduction into a ranked, tie-broken
// leaderboard. Sorting is by total score descending, then total penalty
// ascending, then earliest last-accepted-submission time; remaining ties
// keep the participant input order (stable sort). Ranks are distinct
// consecutive integers, never shared.
func Build(p Params) Standings {
	maxScore := 0
	knownProblem := make(map[int64]bool, len(p.ProblemPoints))
	for _, pp := range p.ProblemPoints {
		maxScore += pp.Score
		knownProblem[pp.ProblemID] = true
	}

	participated := make(map[int64]bool)
	for _, s := range p.Submissions {
		participated[s.UserID] = true
	}

	isFrozen := IsFrozen(p.Contest, p.Now)

	problems := make([]scoring.ProblemPoints, len(p.ProblemPoints))
	copy(problems, p.ProblemPoints)
	sort.Slice(problems, func(i, j int) bool { return problems[i].Order < problems[j].Order })

	subsByUser := make(map[int64][]scoring.Submission)
	submCount := make(map[int64]map[int64]int)
	for _, s := range p.Submissions {
		subsByUser[s.UserID] = append(subsByUser[s.UserID], s)
		if submCount[s.UserID] == nil {
			submCount[s.UserID] = make(map[int64]int)
		}
		submCount[s.UserID][s.ProblemID]++
	}

	firstSolver := firstSolvers(p.Submissions, knownProblem)

	entries := make([]Entry, 0, len(p.Participants))
	lastAccepted := make(map[int64]*time.Time, len(p.Participants))
	for _, part := range p.Participants {
		userSubs := subsByUser[part.UserID]
		summary := scoring.Reduce(userSubs, problems)

		scoreByProblem := make(map[int64]int, len(summary.ProblemScores))
		for _, ps := range summary.ProblemScores {
			scoreByProblem[ps.ProblemID] = ps.Score
		}

		totalPenalty := 0
		records := make([]ProblemRecord, 0, len(problems))
		for _, pp := range problems {
			penalty := 0
			if byProblem, ok := p.Penalties[part.UserID]; ok {
				pen := byProblem[pp.ProblemID]
				penalty = pen.SubmitCount + pen.Time
			}
			totalPenalty += penalty
			solverID, solved := firstSolver[pp.ProblemID]
			records = append(records, ProblemRecord{
				Order:           pp.Order,
				ProblemID:       pp.ProblemID,
				Score:           scoreByProblem[pp.ProblemID],
				Penalty:         penalty,
				IsFirstSolver:   solved && solverID == part.UserID,
				SubmissionCount: submCount[part.UserID][pp.ProblemID],
			})
		}

		lastAccepted[part.UserID] = lastAcceptedTime(userSubs, knownProblem)
		entries = append(entries, Entry{
			UserID:         part.UserID,
			Username:       part.Username,
			TotalScore:     summary.UserContestScore,
			TotalPenalty:   totalPenalty,
			ProblemRecords: records,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.TotalPenalty != b.TotalPenalty {
			return a.TotalPenalty < b.TotalPenalty
		}
		return timeBefore(lastAccepted[a.UserID], lastAccepted[b.UserID])
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	standings := Standings{
		MaxScore:        maxScore,
		ParticipatedNum: len(participated),
		RegisteredNum:   len(p.Participants),
		Leaderboard:     entries,
		IsFrozen:        isFrozen,
	}
	return Filter(standings, p.Search)
}

// IsFrozen reports whether standings are hidden from general viewers at
// the given instant. The flag is point-in-time: it holds from the freeze
// time onward until an admin unfreezes, and must be re-evaluated on every
// read rather than stored.
func IsFrozen(c Contest, now time.Time) bool {
	return c.FreezeTime != nil && !now.Before(*c.FreezeTime) && !c.Unfreeze
}

// Filter keeps only rows whose username contains search, case
// insensitively. Ranks assigned by Build are preserved as-is.
func Filter(s Standings, search string) Standings {
	if search == "" {
		return s
	}
	needle := strings.ToLower(search)
	filtered := make([]Entry, 0, len(s.Leaderboard))
	for _, e := range s.Leaderboard {
		if strings.Contains(strings.ToLower(e.Username), needle) {
			filtered = append(filtered, e)
		}
	}
	s.Leaderboard = filtered
	return s
}

// firstSolvers finds, per problem, the user with the earliest accepted
// submission. At most one user holds the flag for a problem; an exact
// timestamp tie goes to the submission appearing first in the snapshot.
func firstSolvers(subs []scoring.Submission, knownProblem map[int64]bool) map[int64]int64 {
	earliest := make(map[int64]scoring.Submission)
	solver := make(map[int64]int64)
	for _, s := range subs {
		if s.Result != scoring.ResultAccepted || !knownProblem[s.ProblemID] {
			continue
		}
		cur, ok := earliest[s.ProblemID]
		if !ok || s.CreateTime.Before(cur.CreateTime) {
			earliest[s.ProblemID] = s
			solver[s.ProblemID] = s.UserID
		}
	}
	return solver
}

// lastAcceptedTime is the creation time of the user's most recent
// accepted submission, or nil if they have none. Nil sorts after any
// concrete time when breaking ties.
func lastAcceptedTime(subs []scoring.Submission, knownProblem map[int64]bool) *time.Time {
	var last *time.Time
	for _, s := range subs {
		if s.Result != scoring.ResultAccepted || !knownProblem[s.ProblemID] {
			continue
		}
		t := s.CreateTime
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last
}

func timeBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}
