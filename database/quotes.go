package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"guardrail-quote/types"
)

// SaveQuote stores q and its items. A zero QuoteNumber allocates the next
// number at version 1; otherwise the quote becomes the next version of that
// number, unless its total and project name match the latest version, in
// which case ErrDuplicateVersion is returned.
func SaveQuote(ctx context.Context, q *types.Quote) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if q.QuoteNumber == 0 {
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(quote_number), 1000) + 1 FROM quotes").Scan(&q.QuoteNumber); err != nil {
			return fmt.Errorf("failed to allocate quote number: %w", err)
		}
		q.Version = 1
	} else {
		var lastTotal float64
		var lastProject string
		err := tx.QueryRowContext(ctx, "SELECT total_cost, project_name FROM quotes WHERE quote_number = ? ORDER BY version DESC LIMIT 1", q.QuoteNumber).
			Scan(&lastTotal, &lastProject)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load latest version: %w", err)
		}
		if math.Abs(lastTotal-q.TotalCost) < 0.01 && lastProject == q.ProjectName {
			return ErrDuplicateVersion
		}
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) + 1 FROM quotes WHERE quote_number = ?", q.QuoteNumber).Scan(&q.Version); err != nil {
			return fmt.Errorf("failed to allocate version: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO quotes
		(quote_number, version, customer_name, project_name, total_weight_kg, total_cost, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.QuoteNumber, q.Version, q.CustomerName, q.ProjectName, q.TotalWeightKg, q.TotalCost, q.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	q.ID, _ = res.LastInsertId()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quote_items
		(quote_id, part_type, thickness_mm, length_mm, coating_gsm, quantity,
		 black_weight_kg, zinc_weight_kg, total_weight_kg, unit_price, line_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	for i := range q.Items {
		it := &q.Items[i]
		res, err := stmt.ExecContext(ctx, q.ID, it.PartType, it.ThicknessMm, it.LengthMm, it.CoatingGsm, it.Quantity,
			it.BlackWeightKg, it.ZincWeightKg, it.TotalWeightKg, it.UnitPrice, it.LineTotal)
		if err != nil {
			return fmt.Errorf("failed to insert quote item: %w", err)
		}
		it.ID, _ = res.LastInsertId()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quote: %w", err)
	}
	return nil
}

// ListQuotes returns every quote grouped by number, newest number first.
func ListQuotes(ctx context.Context) ([]types.QuoteGroup, error) {
	rows, err := DB.QueryContext(ctx, `SELECT id, quote_number, version, customer_name, project_name,
		total_weight_kg, total_cost, created_by, created_at
		FROM quotes ORDER BY quote_number DESC, version DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	groups := []types.QuoteGroup{}
	var current *types.QuoteGroup
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		// rows arrive ordered by number, so a new number starts a new group
		if current == nil || current.Latest.QuoteNumber != q.QuoteNumber {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &types.QuoteGroup{Latest: q, History: []types.Quote{}}
		} else {
			current.History = append(current.History, q)
		}
	}
	if current != nil {
		groups = append(groups, *current)
	}
	return groups, rows.Err()
}

// GetQuote loads one quote version with its items.
func GetQuote(ctx context.Context, id int64) (types.Quote, error) {
	row := DB.QueryRowContext(ctx, `SELECT id, quote_number, version, customer_name, project_name,
		total_weight_kg, total_cost, created_by, created_at FROM quotes WHERE id=?`, id)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return q, ErrNotFound
	}
	if err != nil {
		return q, fmt.Errorf("failed to load quote: %w", err)
	}

	rows, err := DB.QueryContext(ctx, `SELECT id, part_type, thickness_mm, length_mm, coating_gsm, quantity,
		black_weight_kg, zinc_weight_kg, total_weight_kg, unit_price, line_total
		FROM quote_items WHERE quote_id=? ORDER BY id`, id)
	if err != nil {
		return q, fmt.Errorf("failed to load quote items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it types.QuoteItem
		if err := rows.Scan(&it.ID, &it.PartType, &it.ThicknessMm, &it.LengthMm, &it.CoatingGsm, &it.Quantity,
			&it.BlackWeightKg, &it.ZincWeightKg, &it.TotalWeightKg, &it.UnitPrice, &it.LineTotal); err != nil {
			return q, err
		}
		q.Items = append(q.Items, it)
	}
	return q, rows.Err()
}

func CountQuotes(ctx context.Context) (int, error) {
	var n int
	if err := DB.QueryRowContext(ctx, "SELECT count(DISTINCT quote_number) FROM quotes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count quotes: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (types.Quote, error) {
	var q types.Quote
	var customer sql.NullString
	err := s.Scan(&q.ID, &q.QuoteNumber, &q.Version, &customer, &q.ProjectName,
		&q.TotalWeightKg, &q.TotalCost, &q.CreatedBy, &q.CreatedAt)
	q.CustomerName = customer.String
	return q, err
}
