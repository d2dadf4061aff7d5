// Package repository persists completed qualifications in Postgres.
package repository

import (
	"context"
	"errors"
	"time"

	"homeloans_backend/internal/qualification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

var ErrNotFound = errors.New("lead not found")

// Lead is one stored qualification.
type Lead struct {
	ID               uuid.UUID `json:"id"`
	SessionID        string    `json:"session_id"`
	AnnualIncome     *float64  `json:"annual_income"`
	DownPayment      *float64  `json:"down_payment"`
	MonthlyDebt      *float64  `json:"monthly_debt"`
	CreditScore      *string   `json:"credit_score"`
	PropertyCosts    *float64  `json:"property_costs"`
	Timeline         *string   `json:"timeline"`
	LeadScore        string    `json:"lead_score"`
	MaxMortgage      *float64  `json:"max_mortgage"`
	MaxPropertyValue *float64  `json:"max_property_value"`
	MonthlyPayment   *float64  `json:"monthly_payment"`
	FixedRate        float64   `json:"fixed_rate"`
	CreatedAt        time.Time `json:"created_at"`
}

// Stats summarises the lead table for the admin dashboard.
type Stats struct {
	Total     int            `json:"total"`
	ByTier    map[string]int `json:"by_tier"`
	Last7Days int            `json:"last_7_days"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, session_id, annual_income, down_payment, monthly_debt, credit_score,
	property_costs, timeline, lead_score, max_mortgage, max_property_value, monthly_payment,
	fixed_rate, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.SessionID, &l.AnnualIncome, &l.DownPayment, &l.MonthlyDebt, &l.CreditScore,
		&l.PropertyCosts, &l.Timeline, &l.LeadScore, &l.MaxMortgage, &l.MaxPropertyValue,
		&l.MonthlyPayment, &l.FixedRate, &l.CreatedAt,
	)
	return l, err
}

// Save inserts a completed qualification. Estimate columns stay NULL when
// the result carries no estimate.
func (r *Repository) Save(ctx context.Context, sessionID string, record qualification.LeadRecord, result qualification.Result) (Lead, error) {
	var maxMortgage, maxPropertyValue, monthlyPayment *float64
	est := result.Estimate
	if result.HasEstimate {
		maxMortgage, maxPropertyValue, monthlyPayment = &est.MaxMortgage, &est.MaxPropertyValue, &est.MonthlyPayment
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			id, session_id, annual_income, down_payment, monthly_debt, credit_score,
			property_costs, timeline, lead_score, max_mortgage, max_property_value,
			monthly_payment, fixed_rate
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+leadColumns,
		uuid.New(), sessionID, record.AnnualIncome, record.DownPayment, record.MonthlyDebt,
		record.CreditScore, record.PropertyCosts, record.Timeline, string(result.Tier),
		maxMortgage, maxPropertyValue, monthlyPayment, est.FixedRate,
	)
	return scanLead(row)
}

// GetByID returns a single lead.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	l, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return l, err
}

// ListAll returns every lead, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// Aggregate counts leads overall, per tier and over the last seven days.
// The three queries run concurrently.
func (r *Repository) Aggregate(ctx context.Context) (Stats, error) {
	var (
		total, recent int
		byTier        map[string]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT COUNT(*) FROM leads`).Scan(&total)
	})
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `
			SELECT COUNT(*) FROM leads WHERE created_at >= now() - interval '7 days'
		`).Scan(&recent)
	})
	g.Go(func() error {
		counts, err := r.countByTier(gctx)
		byTier = counts
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	return Stats{Total: total, ByTier: byTier, Last7Days: recent}, nil
}

func (r *Repository) countByTier(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT lead_score, COUNT(*) FROM leads GROUP BY lead_score`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, 3)
	for rows.Next() {
		var (
			tier  string
			count int
		)
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		counts[tier] = count
	}
	return counts, rows.Err()
}
