package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-service/internal/pkg/logger"
)

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "storefront-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", getEnvOrDefault("SPANNER_MIGRATION_DIR", "migrations"), "Directory containing migration SQL files")
	logLevel   = flag.String("log-level", getEnvOrDefault("LOG_LEVEL", "info"), "Log level")
)

func main() {
	flag.Parse()

	if err := logger.Init(*logLevel, false); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		logger.Info(ctx, "using spanner emulator", logger.String("host", host))
	}

	if err := run(ctx); err != nil {
		logger.Error(ctx, "migration failed", logger.ErrorF(err))
		os.Exit(1)
	}
	logger.Info(ctx, "migrations completed")
}

func run(ctx context.Context) error {
	if err := ensureInstance(ctx); err != nil {
		return fmt.Errorf("ensure instance: %w", err)
	}
	if err := ensureDatabase(ctx); err != nil {
		return fmt.Errorf("ensure database: %w", err)
	}
	if err := applyMigrations(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID)
}

func databasePath() string {
	return fmt.Sprintf("%s/databases/%s", instancePath(), *databaseID)
}

func ensureInstance(ctx context.Context) error {
	log := logger.With(logger.String("instance", *instanceID))

	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instancePath()})
	switch {
	case err == nil:
		log.Debug(ctx, "instance exists")
		return nil
	case status.Code(err) != codes.NotFound:
		log.Warn(ctx, "unexpected error checking instance", logger.ErrorF(err))
		return nil
	}

	log.Info(ctx, "creating instance")
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", *projectID),
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
			DisplayName: "Storefront Development",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn(ctx, "instance creation did not settle", logger.ErrorF(err))
	}
	return nil
}

func ensureDatabase(ctx context.Context) error {
	log := logger.With(logger.String("database", *databaseID))

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("create database admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: databasePath()})
	if err == nil {
		log.Debug(ctx, "database exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		// The emulator answers oddly for fresh instances.
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Warn(ctx, "proceeding despite database check error", logger.ErrorF(err))
			return nil
		}
		return fmt.Errorf("check database: %w", err)
	}

	log.Info(ctx, "creating database")
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for database: %w", err)
	}
	return nil
}

func applyMigrations(ctx context.Context) error {
	files, err := migrationFiles(*migrateDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn(ctx, "no migration files found", logger.String("dir", *migrateDir))
		return nil
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("create database admin client: %w", err)
	}
	defer admin.Close()

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		statements := splitDDLStatements(string(content))
		logger.Info(ctx, "applying migration", logger.String("file", name), logger.Int("statements", len(statements)))

		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("start ddl for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("apply ddl for %s: %w", name, err)
		}
	}
	return nil
}

// migrationFiles returns the .sql files of dir in name order.
func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
