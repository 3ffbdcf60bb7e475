package dbprep

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"stp/internal/config"
)

// Provisioner creates the per-worker databases scenarios run against
type Provisioner struct {
	config *config.Config
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(cfg *config.Config) *Provisioner {
	return &Provisioner{config: cfg}
}

// CheckAndCreateDatabases checks if worker databases exist and creates them if they don't.
// Returns the worker IDs that have a database available.
func (p *Provisioner) CheckAndCreateDatabases(workerCount int) ([]int, error) {
	// Load .env file from project directory
	envPath := filepath.Join(p.config.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	db, err := p.connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	availableWorkers := make([]int, 0, workerCount)

	for i := 1; i <= workerCount; i++ {
		dbName := p.config.GetDatabaseName(i)

		exists, err := p.databaseExists(db, dbName)
		if err != nil {
			return nil, fmt.Errorf("failed to check database %s: %w", dbName, err)
		}

		if !exists {
			if err := p.createDatabase(db, dbName); err != nil {
				return nil, fmt.Errorf("failed to create database %s: %w", dbName, err)
			}
		}

		availableWorkers = append(availableWorkers, i)
	}

	return availableWorkers, nil
}

// connect opens a connection to the MySQL server (without selecting a database)
func (p *Provisioner) connect() (*sql.DB, error) {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "127.0.0.1"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "3306"
	}
	dbUser := os.Getenv("DB_USERNAME")
	if dbUser == "" {
		dbUser = "root"
	}
	dbPassword := os.Getenv("DB_PASSWORD")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", dbUser, dbPassword, dbHost, dbPort)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	return db, nil
}

// databaseExists checks if a database exists
func (p *Provisioner) databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (p *Provisioner) createDatabase(db *sql.DB, dbName string) error {
	// Sanitize database name to prevent SQL injection
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.Exec(query)
	return err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	// Only allow alphanumeric, underscore, and specific patterns
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	// Check for SQL injection patterns
	invalidChars := []string{"'", "\"", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, char := range invalidChars {
		if strings.Contains(upperName, char) {
			return false
		}
	}
	return true
}
