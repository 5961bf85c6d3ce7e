package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dealscope/pkg/models"
)

// PostgresRepo persists deals in a single JSONB table keyed by deal ID.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS deals (
//	  id TEXT PRIMARY KEY,
//	  company_name TEXT,
//	  deal_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresRepo connects to the database identified by dsn and ensures the
// deals table exists.
func NewPostgresRepo(ctx context.Context, dsn string) (*PostgresRepo, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS deals (
			id TEXT PRIMARY KEY,
			company_name TEXT,
			deal_json JSONB,
			updated_at TIMESTAMPTZ
		);
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure deals table: %w", err)
	}

	return &PostgresRepo{pool: pool}, nil
}

// Close releases the connection pool.
func (r *PostgresRepo) Close() {
	r.pool.Close()
}

// Save upserts a deal keyed by its ID.
func (r *PostgresRepo) Save(ctx context.Context, deal *models.Deal) error {
	if deal == nil || deal.ID == "" {
		return fmt.Errorf("deal must have an ID")
	}

	jsonData, err := json.Marshal(deal)
	if err != nil {
		return fmt.Errorf("failed to marshal deal: %w", err)
	}

	query := `
		INSERT INTO deals (id, company_name, deal_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			company_name = EXCLUDED.company_name,
			deal_json = EXCLUDED.deal_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = r.pool.Exec(ctx, query, deal.ID, deal.CompanyName, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

// Get loads one deal by ID.
func (r *PostgresRepo) Get(ctx context.Context, id string) (*models.Deal, error) {
	var jsonData []byte
	err := r.pool.QueryRow(ctx, `SELECT deal_json FROM deals WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("deal %s not found", id)
		}
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}

	var deal models.Deal
	if err := json.Unmarshal(jsonData, &deal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
	}
	return &deal, nil
}

// List returns all stored deals, newest upload first.
func (r *PostgresRepo) List(ctx context.Context) ([]*models.Deal, error) {
	rows, err := r.pool.Query(ctx, `SELECT deal_json FROM deals ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	var deals []*models.Deal
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		var deal models.Deal
		if err := json.Unmarshal(jsonData, &deal); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
		}
		deals = append(deals, &deal)
	}
	return deals, rows.Err()
}
