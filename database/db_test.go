package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"guardrail-quote/calc"
	"guardrail-quote/metrics"
	"guardrail-quote/types"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	err := InitDB(":memory:", AdminSeed{Username: "admin", Password: "secret"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { Close() })
}

func TestInitDB_Seeds(t *testing.T) {
	setupTestDB(t)

	rates, err := GetRates()
	require.NoError(t, err)
	assert.Equal(t, calc.Rates{SteelPerKg: 70, ZincPerKg: 300, TaxPercent: 18}, rates)

	grades, err := CoatingGrades()
	require.NoError(t, err)
	require.Len(t, grades, len(DefaultCoatingGrades))
	assert.Equal(t, 350.0, grades[0].Gsm)
	assert.Equal(t, "550 GSM", grades[4].Label)

	u, err := FindUser("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))

	_, err = FindUser("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInitDB_Idempotent(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, createTables())
	require.NoError(t, seedData(AdminSeed{Username: "other", Password: "x"}, zap.NewNop()))

	_, err := FindUser("other")
	assert.ErrorIs(t, err, ErrNotFound)
	grades, _ := CoatingGrades()
	assert.Len(t, grades, 5)
}

func TestRatesAndCoatings(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, UpdateRates(calc.Rates{SteelPerKg: 82.5, ZincPerKg: 310, TaxPercent: 12}))
	rates, err := GetRates()
	require.NoError(t, err)
	assert.Equal(t, 82.5, rates.SteelPerKg)

	ok, err := IsCoatingGrade(450)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = IsCoatingGrade(600)
	assert.False(t, ok)

	require.NoError(t, AddCoatingGrade(types.CoatingGrade{Gsm: 600}))
	ok, _ = IsCoatingGrade(600)
	assert.True(t, ok)

	require.NoError(t, DeleteCoatingGrade(350))
	assert.ErrorIs(t, DeleteCoatingGrade(350), ErrNotFound)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Len(t, s.CoatingGrades, 5)
	assert.Equal(t, "600 GSM", s.CoatingGrades[4].Label)
}

func sampleQuote(project string, total float64) *types.Quote {
	return &types.Quote{
		CustomerName:  "NHAI",
		ProjectName:   project,
		TotalWeightKg: 83.76,
		TotalCost:     total,
		CreatedBy:     "admin",
		Items: []types.QuoteItem{
			{PartType: "wbeam", ThicknessMm: 5, CoatingGsm: 450, Quantity: 1, TotalWeightKg: 83.76, LineTotal: total},
		},
	}
}

func TestSaveQuote_Versioning(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	q1 := sampleQuote("NH-44", 1000)
	require.NoError(t, SaveQuote(ctx, q1))
	assert.Equal(t, 1001, q1.QuoteNumber)
	assert.Equal(t, 1, q1.Version)

	q2 := sampleQuote("NH-48", 500)
	require.NoError(t, SaveQuote(ctx, q2))
	assert.Equal(t, 1002, q2.QuoteNumber)

	// same total and project as the latest version
	dup := sampleQuote("NH-44", 1000.004)
	dup.QuoteNumber = 1001
	assert.ErrorIs(t, SaveQuote(ctx, dup), ErrDuplicateVersion)

	v2 := sampleQuote("NH-44", 1200)
	v2.QuoteNumber = 1001
	require.NoError(t, SaveQuote(ctx, v2))
	assert.Equal(t, 2, v2.Version)

	missing := sampleQuote("NH-1", 10)
	missing.QuoteNumber = 4242
	assert.ErrorIs(t, SaveQuote(ctx, missing), ErrNotFound)

	groups, err := ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 1002, groups[0].Latest.QuoteNumber)
	assert.Equal(t, 2, groups[1].Latest.Version)
	require.Len(t, groups[1].History, 1)
	assert.Equal(t, 1, groups[1].History[0].Version)

	n, err := CountQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGetQuote(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	q := sampleQuote("NH-44", 1000)
	require.NoError(t, SaveQuote(ctx, q))

	got, err := GetQuote(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "NHAI", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "wbeam", got.Items[0].PartType)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = GetQuote(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityLogger(t *testing.T) {
	setupTestDB(t)

	a := NewActivityLogger(DB, 16, zap.NewNop())
	a.Log("admin", "login", "")
	a.Log("admin", "calculate", "wbeam")
	a.Close()
	a.Close()
	a.Log("admin", "ignored", "after close")

	items, err := ListActivity(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "calculate", items[0].Action)
	assert.Equal(t, "wbeam", items[0].Detail)
}

func TestSeedData_CountError(t *testing.T) {
	setupTestDB(t)
	_, err := DB.Exec("DROP TABLE coating_grades")
	require.NoError(t, err)

	err = seedData(AdminSeed{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count coating grades")
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:", dsn(":memory:"))
	assert.Equal(t, "q.db?_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL", dsn("q.db"))
	assert.Equal(t, "file:q.db?cache=shared&_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL", dsn("file:q.db?cache=shared"))
}

func TestSaveQuote_ConcurrentFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.db")
	require.NoError(t, InitDB(path, AdminSeed{}, zap.NewNop()))
	t.Cleanup(func() { Close() })

	const n = 50
	ctx := context.Background()
	numbers := make(chan int, n)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q := sampleQuote(fmt.Sprintf("NH-%d", i), float64(100+i))
			if err := SaveQuote(ctx, q); err != nil {
				errs <- err
				return
			}
			numbers <- q.QuoteNumber
		}(i)
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Errorf("concurrent save failed: %v", err)
	}
	seen := map[int]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "quote number %d allocated twice", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)

	count, err := CountQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestActivityLogger_DropsWhenFull(t *testing.T) {
	setupTestDB(t)

	// hold the only connection so the worker stalls on its first insert
	tx, err := DB.Begin()
	require.NoError(t, err)

	a := NewActivityLogger(DB, 1, zap.NewNop())
	before := testutil.ToFloat64(metrics.ActivityDropped)

	start := time.Now()
	for i := 0; i < 10; i++ {
		a.Log("admin", "calculate", fmt.Sprintf("%d", i))
	}
	assert.Less(t, time.Since(start), time.Second)

	// at most one entry in flight and one buffered
	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.ActivityDropped)-before, 8.0)

	require.NoError(t, tx.Rollback())
	a.Close()

	items, err := ListActivity(context.Background(), 50)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 2)
	assert.NotEmpty(t, items)
}
