package contestsrvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/contestadm/backend/leaderboard"
	"github.com/contestadm/backend/ordering"
	"github.com/contestadm/backend/scoring"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContestRepo implements every contest repository interface on top of
// a postgres pool. Reorder updates run inside a single transaction.
type PgContestRepo struct {
	pool *pgxpool.Pool
}

func NewPgContestRepo(pool *pgxpool.Pool) *PgContestRepo {
	return &PgContestRepo{pool: pool}
}

func (r *PgContestRepo) Get(ctx context.Context, contestID int64) (*Contest, error) {
	query := `
		SELECT id, title, start_time, end_time, freeze_time, unfreeze
		FROM contests
		WHERE id = $1
	`
	var c Contest
	err := r.pool.QueryRow(ctx, query, contestID).Scan(
		&c.ID,
		&c.Title,
		&c.StartTime,
		&c.EndTime,
		&c.FreezeTime,
		&c.Unfreeze,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query contest: %w", err)
	}
	return &c, nil
}

func (r *PgContestRepo) SetUnfreeze(ctx context.Context, contestID int64, unfreeze bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE contests SET unfreeze = $1 WHERE id = $2`,
		unfreeze, contestID)
	if err != nil {
		return fmt.Errorf("failed to update contest unfreeze: %w", err)
	}
	return nil
}

func (r *PgContestRepo) List(ctx context.Context, contestID int64) ([]ContestProblem, error) {
	query := `
		SELECT id, contest_id, problem_id, score, ord
		FROM contest_problems
		WHERE contest_id = $1
		ORDER BY ord ASC
	`
	rows, err := r.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contest problems: %w", err)
	}
	defer rows.Close()

	var problems []ContestProblem
	for rows.Next() {
		var cp ContestProblem
		if err := rows.Scan(&cp.ID, &cp.ContestID, &cp.ProblemID, &cp.Score, &cp.Order); err != nil {
			return nil, fmt.Errorf("failed to scan contest problem: %w", err)
		}
		problems = append(problems, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contest problems: %w", err)
	}
	return problems, nil
}

func (r *PgContestRepo) UpdateOrders(ctx context.Context, contestID int64, placements []ordering.Placement) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, p := range placements {
			tag, err := tx.Exec(ctx,
				`UPDATE contest_problems SET ord = $1 WHERE id = $2 AND contest_id = $3`,
				p.NewOrder, p.ID, contestID)
			if err != nil {
				return fmt.Errorf("failed to update problem order: %w", err)
			}
			if tag.RowsAffected() != 1 {
				return fmt.Errorf("contest problem %d not found during reorder", p.ID)
			}
		}
		return nil
	})
}

func (r *PgContestRepo) Remove(ctx context.Context, contestID, problemID int64, compaction []ordering.Placement) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM contest_problems WHERE contest_id = $1 AND problem_id = $2`,
			contestID, problemID)
		if err != nil {
			return fmt.Errorf("failed to delete contest problem: %w", err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("contest problem %d not found in contest %d", problemID, contestID)
		}
		for _, p := range compaction {
			_, err := tx.Exec(ctx,
				`UPDATE contest_problems SET ord = $1 WHERE id = $2 AND contest_id = $3`,
				p.NewOrder, p.ID, contestID)
			if err != nil {
				return fmt.Errorf("failed to compact problem order: %w", err)
			}
		}
		return nil
	})
}

func (r *PgContestRepo) ListByContest(ctx context.Context, contestID int64) ([]scoring.Submission, error) {
	query := `
		SELECT uuid, user_id, problem_id, contest_id, result, score, created_at
		FROM submissions
		WHERE contest_id = $1
	`
	return r.querySubmissions(ctx, query, contestID)
}

func (r *PgContestRepo) ListByContestUser(ctx context.Context, contestID, userID int64) ([]scoring.Submission, error) {
	query := `
		SELECT uuid, user_id, problem_id, contest_id, result, score, created_at
		FROM submissions
		WHERE contest_id = $1 AND user_id = $2
	`
	return r.querySubmissions(ctx, query, contestID, userID)
}

func (r *PgContestRepo) querySubmissions(ctx context.Context, query string, args ...any) ([]scoring.Submission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []scoring.Submission
	for rows.Next() {
		var s scoring.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProblemID, &s.ContestID, &s.Result, &s.Score, &s.CreateTime); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}
	return subs, nil
}

func (r *PgContestRepo) ListParticipants(ctx context.Context, contestID int64) ([]leaderboard.Participant, error) {
	query := `
		SELECT cr.user_id, u.username
		FROM contest_records cr
		JOIN users u ON u.id = cr.user_id
		WHERE cr.contest_id = $1
		ORDER BY cr.user_id ASC
	`
	rows, err := r.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contest records: %w", err)
	}
	defer rows.Close()

	var participants []leaderboard.Participant
	for rows.Next() {
		var p leaderboard.Participant
		if err := rows.Scan(&p.UserID, &p.Username); err != nil {
			return nil, fmt.Errorf("failed to scan contest record: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contest records: %w", err)
	}
	return participants, nil
}

func (r *PgContestRepo) Penalties(ctx context.Context, contestID int64) (map[int64]map[int64]leaderboard.Penalty, error) {
	query := `
		SELECT user_id, problem_id, submit_count_penalty, time_penalty
		FROM contest_problem_records
		WHERE contest_id = $1
	`
	rows, err := r.pool.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query problem records: %w", err)
	}
	defer rows.Close()

	penalties := make(map[int64]map[int64]leaderboard.Penalty)
	for rows.Next() {
		var userID, problemID int64
		var pen leaderboard.Penalty
		if err := rows.Scan(&userID, &problemID, &pen.SubmitCount, &pen.Time); err != nil {
			return nil, fmt.Errorf("failed to scan problem record: %w", err)
		}
		if penalties[userID] == nil {
			penalties[userID] = make(map[int64]leaderboard.Penalty)
		}
		penalties[userID][problemID] = pen
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating problem records: %w", err)
	}
	return penalties, nil
}
