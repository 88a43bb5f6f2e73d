package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")), os.Stdout).Named("migration")
	defer func() { _ = logger.Sync() }()

	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		printUsage()
		logger.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}
	dbURL = normalizeDBURL(dbURL, envBool(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))

	dirs := append([]string{os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH")}, defaultMigrationDirs...)
	migrationsDir, err := resolveMigrationsDir(dirs)
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		os.Exit(1)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		logger.Error("create migrator", "error", err)
		os.Exit(1)
	}

	runErr := run(m, cmd, logger)
	closeMigrator(m, logger)
	if runErr != nil {
		logger.Error("migration failed", "command", cmd.name, "error", runErr)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, cmd command, logger *logging.Logger) error {
	var err error
	switch cmd.name {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-cmd.steps)
	case "force":
		err = m.Force(cmd.version)
	case "goto":
		err = m.Migrate(cmd.target)
	case "version":
		version, dirty, versionErr := m.Version()
		if errors.Is(versionErr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if versionErr != nil {
			return fmt.Errorf("read version: %w", versionErr)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
		return nil
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes", "command", cmd.name)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("migration complete",
		"command", cmd.name,
		"steps", cmd.steps,
		"version", cmd.version,
		"target", cmd.target,
	)
	return nil
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 5\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 3\n", name)
}
