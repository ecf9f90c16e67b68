package scoring

import "sort"

// Reduce folds a user's submissions for one contest into a ScoreSummary.
//
// Only the most recently created submission per problem counts
// (latest-submission-wins, not best-attempt-wins). Submissions against
// problems no longer present in the contest are discarded. The awarded
// score of a kept submission is its percentage applied to the problem's
// point value, truncated toward zero.
//
// Reduce is a total function: empty input yields an all-zero summary.
func Reduce(subs []Submission, points []ProblemPoints) ScoreSummary {
	maxScoreByProblem := make(map[int64]int, len(points))
	perfectScore := 0
	for _, pp := range points {
		maxScoreByProblem[pp.ProblemID] = pp.Score
		perfectScore += pp.Score
	}

	known := make([]Submission, 0, len(subs))
	for _, s := range subs {
		if _, ok := maxScoreByProblem[s.ProblemID]; ok {
			known = append(known, s)
		}
	}

	// Creation time is the authoritative ordering, not the id.
	sort.SliceStable(known, func(i, j int) bool {
		return known[i].CreateTime.After(known[j].CreateTime)
	})

	latest := make(map[int64]Submission, len(known))
	for _, s := range known {
		if _, seen := latest[s.ProblemID]; seen {
			continue
		}
		latest[s.ProblemID] = s
	}

	problemScores := make([]ProblemScore, 0, len(latest))
	userScore := 0
	for problemID, s := range latest {
		maxScore := maxScoreByProblem[problemID]
		awarded := s.Score * maxScore / 100
		problemScores = append(problemScores, ProblemScore{
			ProblemID: problemID,
			Score:     awarded,
			MaxScore:  maxScore,
		})
		userScore += awarded
	}
	sort.Slice(problemScores, func(i, j int) bool {
		return problemScores[i].ProblemID < problemScores[j].ProblemID
	})

	return ScoreSummary{
		SubmittedProblemCount: len(latest),
		TotalProblemCount:     len(points),
		UserContestScore:      userScore,
		ContestPerfectScore:   perfectScore,
		ProblemScores:         problemScores,
	}
}
