package testutil

import (
	"context"
	"fmt"
	"gotierlist/pkg/config"
	"gotierlist/pkg/database"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewTestConnection starts a postgres container and returns a migrated connection pool.
// The test is skipped when no container provider is available.
func NewTestConnection(t *testing.T, migrationsPath string) (*gorm.DB, func()) {
	t.Helper()
	tc.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=test password=test dbname=testdb sslmode=disable TimeZone=UTC",
		host, port.Port(),
	)

	db, err := database.NewConnection(dsn)
	if err != nil {
		t.Fatalf("Failed to open the connection: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}

	// Run the migrations to replicate the full schema.
	err = database.RunMigrations(config.DatabaseConfiguration{
		MigrationsPath: migrationsPath,
		Database:       "testdb",
	}, sqlDB)
	if err != nil {
		t.Fatalf("Failed to run the migrations: %v", err)
	}

	cleanup := func() {
		sqlDB.Close()
		tc.CleanupContainer(t, container)
	}

	return db, cleanup
}
