package rates

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores the rate sheet in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Read returns the current sheet or ErrNotFound.
func (r *Repository) Read(ctx context.Context) (RateSheet, error) {
	var sheet RateSheet
	err := r.pool.QueryRow(ctx, `
		SELECT fixed_rate, variable_rate, three_year_fixed_rate, updated_at
		FROM rate_sheets
		WHERE id = 1
	`).Scan(&sheet.FixedRate, &sheet.VariableRate, &sheet.ThreeYearFixedRate, &sheet.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return RateSheet{}, ErrNotFound
	}
	if err != nil {
		return RateSheet{}, err
	}
	return sheet, nil
}

// Write replaces the sheet and returns it with the stored timestamp.
func (r *Repository) Write(ctx context.Context, sheet RateSheet) (RateSheet, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO rate_sheets (id, fixed_rate, variable_rate, three_year_fixed_rate, updated_at)
		VALUES (1, $1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET
			fixed_rate = EXCLUDED.fixed_rate,
			variable_rate = EXCLUDED.variable_rate,
			three_year_fixed_rate = EXCLUDED.three_year_fixed_rate,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`, sheet.FixedRate, sheet.VariableRate, sheet.ThreeYearFixedRate).Scan(&sheet.UpdatedAt)
	if err != nil {
		return RateSheet{}, err
	}
	return sheet, nil
}

var _ Store = (*Repository)(nil)
