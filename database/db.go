package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateVersion = errors.New("no changes since previous version")
)

// AdminSeed is the account created when the users table is empty.
type AdminSeed struct {
	Username string
	Password string
}

// InitDB opens the SQLite file at path, creates missing tables and seeds
// defaults. ":memory:" gives a private in-memory database.
func InitDB(path string, admin AdminSeed, logger *zap.Logger) error {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every new connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db

	if err := createTables(); err != nil {
		return err
	}
	if err := seedData(admin, logger); err != nil {
		return err
	}
	logger.Info("Database ready", zap.String("path", path))
	return nil
}

// dsn adds the connection options for file databases. Transactions take the
// write lock on BEGIN so concurrent read-then-insert saves queue on the busy
// timeout instead of failing on lock upgrade.
func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL"
}

func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}

func createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			steel_rate_kg REAL DEFAULT 70.0,
			zinc_rate_kg REAL DEFAULT 300.0,
			tax_percent REAL DEFAULT 18.0
		);`,
		`CREATE TABLE IF NOT EXISTS coating_grades (
			gsm REAL PRIMARY KEY,
			label TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER'
		);`,
		`CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quote_number INTEGER NOT NULL,
			version INTEGER NOT NULL,
			customer_name TEXT,
			project_name TEXT NOT NULL,
			total_weight_kg REAL NOT NULL,
			total_cost REAL NOT NULL,
			created_by TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (quote_number, version)
		);`,
		`CREATE TABLE IF NOT EXISTS quote_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quote_id INTEGER NOT NULL REFERENCES quotes(id),
			part_type TEXT NOT NULL,
			thickness_mm REAL NOT NULL,
			length_mm REAL NOT NULL,
			coating_gsm REAL NOT NULL,
			quantity INTEGER NOT NULL,
			black_weight_kg REAL NOT NULL,
			zinc_weight_kg REAL NOT NULL,
			total_weight_kg REAL NOT NULL,
			unit_price REAL NOT NULL,
			line_total REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quote_items_quote ON quote_items(quote_id);`,
		`CREATE TABLE IF NOT EXISTS activity_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			action TEXT NOT NULL,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, query := range queries {
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// DefaultCoatingGrades are the zinc coatings offered out of the box.
var DefaultCoatingGrades = []float64{350, 400, 450, 500, 550}

func seedData(admin AdminSeed, logger *zap.Logger) error {
	if _, err := DB.Exec("INSERT OR IGNORE INTO settings (id, steel_rate_kg, zinc_rate_kg, tax_percent) VALUES (1, 70.0, 300.0, 18.0)"); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	var gradeCount int
	if err := DB.QueryRow("SELECT count(*) FROM coating_grades").Scan(&gradeCount); err != nil {
		return fmt.Errorf("failed to count coating grades: %w", err)
	}
	if gradeCount == 0 {
		for _, gsm := range DefaultCoatingGrades {
			if _, err := DB.Exec("INSERT INTO coating_grades (gsm, label) VALUES (?, ?)", gsm, fmt.Sprintf("%.0f GSM", gsm)); err != nil {
				return fmt.Errorf("failed to seed coating grades: %w", err)
			}
		}
	}

	var userCount int
	if err := DB.QueryRow("SELECT count(*) FROM users").Scan(&userCount); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 && admin.Username != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := CreateUser(admin.Username, string(hash), RoleAdmin); err != nil {
			return err
		}
		logger.Info("Seeded admin user", zap.String("username", admin.Username))
	}
	return nil
}
