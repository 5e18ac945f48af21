// Package pgtest starts a disposable PostgreSQL container with the migrated schema
// for integration suites.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"fieldservice/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies the goose migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(ctx, db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table and resets the id sequences.
func (d *Database) Truncate(ctx context.Context) error {
	return d.DB.WithContext(ctx).Exec(`
		TRUNCATE TABLE notifications, visits, order_workers, orders,
			technician_availabilities, technicians
		RESTART IDENTITY CASCADE
	`).Error
}

// SeedTechnician inserts a bare ACTIVE technician row and returns its id.
func (d *Database) SeedTechnician(ctx context.Context, dni string) (int64, error) {
	var id int64
	err := d.DB.WithContext(ctx).
		Raw(`INSERT INTO technicians (dni, name) VALUES (?, ?) RETURNING id`, dni, "Technician "+dni).
		Scan(&id).Error
	return id, err
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
