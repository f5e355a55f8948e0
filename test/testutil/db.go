package testutil

import (
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/satvik2131/lamars-truck-backend/internal/db"
	"github.com/satvik2131/lamars-truck-backend/internal/migration"
)

type TestDB struct {
	DB      *db.Database
	DSN     string
	Cleanup func() error
}

// SetupTestDB creates a uniquely named database on the server behind
// TEST_DB_DSN and migrates it up. Cleanup drops it again.
func SetupTestDB() (*TestDB, error) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("TEST_DB_DSN env-var not set")
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN %q: %w", dsn, err)
	}

	origName := cfg.DBName
	cfg.DBName = ""
	rootDB, err := db.New(cfg.FormatDSN(), 2, 1, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("open root DB: %w", err)
	}

	dbName := fmt.Sprintf("%s_%d", origName, time.Now().UnixNano())
	if _, err := rootDB.Exec("CREATE DATABASE " + dbName); err != nil {
		_ = rootDB.Close()
		return nil, err
	}

	drop := func() error {
		defer rootDB.Close()
		if _, err := rootDB.Exec("DROP DATABASE " + dbName); err != nil {
			return fmt.Errorf("drop database %q: %w", dbName, err)
		}
		return nil
	}

	cfg.DBName = dbName
	testDSN := migration.WithMultiStatements(cfg.FormatDSN())
	database, err := db.New(testDSN, 5, 5, time.Minute)
	if err != nil {
		_ = drop()
		return nil, fmt.Errorf("open test DB %q: %w", testDSN, err)
	}

	if err := migration.MigrateUp(database.DB); err != nil {
		_ = database.Close()
		_ = drop()
		return nil, fmt.Errorf("migrate test DB: %w", err)
	}

	cleanup := func() error {
		if err := database.Close(); err != nil {
			return err
		}
		return drop()
	}

	return &TestDB{DB: database, DSN: testDSN, Cleanup: cleanup}, nil
}
