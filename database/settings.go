package database

import (
	"fmt"

	"guardrail-quote/calc"
	"guardrail-quote/types"
)

func GetRates() (calc.Rates, error) {
	var r calc.Rates
	err := DB.QueryRow("SELECT steel_rate_kg, zinc_rate_kg, tax_percent FROM settings WHERE id=1").
		Scan(&r.SteelPerKg, &r.ZincPerKg, &r.TaxPercent)
	if err != nil {
		return r, fmt.Errorf("failed to load rates: %w", err)
	}
	return r, nil
}

func UpdateRates(r calc.Rates) error {
	_, err := DB.Exec("UPDATE settings SET steel_rate_kg=?, zinc_rate_kg=?, tax_percent=? WHERE id=1", r.SteelPerKg, r.ZincPerKg, r.TaxPercent)
	if err != nil {
		return fmt.Errorf("failed to update rates: %w", err)
	}
	return nil
}

func CoatingGrades() ([]types.CoatingGrade, error) {
	rows, err := DB.Query("SELECT gsm, label FROM coating_grades ORDER BY gsm")
	if err != nil {
		return nil, fmt.Errorf("failed to list coating grades: %w", err)
	}
	defer rows.Close()

	grades := []types.CoatingGrade{}
	for rows.Next() {
		var g types.CoatingGrade
		if err := rows.Scan(&g.Gsm, &g.Label); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func IsCoatingGrade(gsm float64) (bool, error) {
	var n int
	if err := DB.QueryRow("SELECT count(*) FROM coating_grades WHERE gsm=?", gsm).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check coating grade: %w", err)
	}
	return n > 0, nil
}

func AddCoatingGrade(g types.CoatingGrade) error {
	label := g.Label
	if label == "" {
		label = fmt.Sprintf("%.0f GSM", g.Gsm)
	}
	if _, err := DB.Exec("INSERT OR REPLACE INTO coating_grades (gsm, label) VALUES (?, ?)", g.Gsm, label); err != nil {
		return fmt.Errorf("failed to add coating grade: %w", err)
	}
	return nil
}

func DeleteCoatingGrade(gsm float64) error {
	res, err := DB.Exec("DELETE FROM coating_grades WHERE gsm=?", gsm)
	if err != nil {
		return fmt.Errorf("failed to delete coating grade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func LoadSettings() (types.Settings, error) {
	var s types.Settings
	rates, err := GetRates()
	if err != nil {
		return s, err
	}
	grades, err := CoatingGrades()
	if err != nil {
		return s, err
	}
	s.Rates = rates
	s.CoatingGrades = grades
	return s, nil
}
