package testcasesrvc

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgTestcaseRepo stores testcase metadata in postgres. ReplaceAll swaps
// the whole set inside one transaction so a failed write never leaves a
// problem with a partial testcase list.
type PgTestcaseRepo struct {
	pool *pgxpool.Pool
}

func NewPgTestcaseRepo(pool *pgxpool.Pool) *PgTestcaseRepo {
	return &PgTestcaseRepo{pool: pool}
}

func (r *PgTestcaseRepo) ReplaceAll(ctx context.Context, problemID int64, rows []Testcase) ([]Testcase, error) {
	stored := make([]Testcase, len(rows))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM problem_testcases WHERE problem_id = $1`, problemID)
		if err != nil {
			return fmt.Errorf("failed to delete testcases: %w", err)
		}

		insertQuery := `
			INSERT INTO problem_testcases (
				problem_id, ord, is_hidden, weight_num, weight_den, score_weight
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		// Rows restored after a failed storage write keep their ids so
		// they still match their bodies in object storage.
		restoreQuery := `
			INSERT INTO problem_testcases (
				id, problem_id, ord, is_hidden, weight_num, weight_den, score_weight
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for i, tc := range rows {
			stored[i] = tc
			if tc.ID != 0 {
				_, err := tx.Exec(ctx, restoreQuery,
					tc.ID,
					problemID,
					tc.Order,
					tc.IsHidden,
					tc.Weight.Num,
					tc.Weight.Den,
					tc.ScoreWeight,
				)
				if err != nil {
					return fmt.Errorf("failed to restore testcase: %w", err)
				}
				continue
			}
			err := tx.QueryRow(ctx, insertQuery,
				problemID,
				tc.Order,
				tc.IsHidden,
				tc.Weight.Num,
				tc.Weight.Den,
				tc.ScoreWeight,
			).Scan(&stored[i].ID)
			if err != nil {
				return fmt.Errorf("failed to insert testcase: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *PgTestcaseRepo) List(ctx context.Context, problemID int64) ([]Testcase, error) {
	query := `
		SELECT id, problem_id, ord, is_hidden, weight_num, weight_den, score_weight
		FROM problem_testcases
		WHERE problem_id = $1
		ORDER BY ord ASC
	`
	rows, err := r.pool.Query(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query testcases: %w", err)
	}
	defer rows.Close()

	var testcases []Testcase
	for rows.Next() {
		var tc Testcase
		if err := rows.Scan(
			&tc.ID, &tc.ProblemID, &tc.Order, &tc.IsHidden,
			&tc.Weight.Num, &tc.Weight.Den, &tc.ScoreWeight,
		); err != nil {
			return nil, fmt.Errorf("failed to scan testcase: %w", err)
		}
		testcases = append(testcases, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testcases: %w", err)
	}
	return testcases, nil
}
