package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/school_ledger/internal/seed"
	"github.com/SscSPs/school_ledger/pkg/database"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

func main() {
	file := flag.String("file", "", "seed YAML file (defaults to SEED_FILE, then the built-in chart)")
	seederID := flag.String("as", "system-seed", "user ID recorded as creator of seeded rows")
	skipMigrate := flag.Bool("skip-migrate", false, "do not apply pending migrations first")
	flag.Parse()

	if err := run(*file, *seederID, *skipMigrate); err != nil {
		red.Printf("Error: %s\n", err)
		os.Exit(1)
	}
}

func run(file, seederID string, skipMigrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if file == "" {
		file = cfg.SeedFile
	}

	header("School ledger seed")

	yellow.Println("[1/3] Loading chart of accounts")
	chart, err := seed.LoadFromFile(file)
	if err != nil {
		return err
	}
	source := file
	if source == "" {
		source = "built-in chart"
	}
	fmt.Printf("  → %s: %d accounts, %d categories\n", source, len(chart.Accounts), len(chart.Categories))

	ctx := context.Background()

	yellow.Println("[2/3] Connecting to database")
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)
	if skipMigrate {
		fmt.Println("  → migrations skipped")
	} else {
		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, nil)
		if err != nil {
			return err
		}
		if applied {
			green.Println("  → migrations applied")
		} else {
			fmt.Println("  → schema up to date")
		}
	}

	yellow.Println("[3/3] Applying seed")
	svc := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), nil)
	res, err := seed.Apply(ctx, svc.Account, svc.Category, chart, seederID)
	if err != nil {
		return err
	}
	green.Printf("  → accounts: %d created, %d already present\n", res.AccountsCreated, res.AccountsSkipped)
	green.Printf("  → categories: %d created, %d already present\n", res.CategoriesCreated, res.CategoriesSkipped)
	return nil
}

func header(text string) {
	line := strings.Repeat("=", 60)
	green.Printf("\n%s\n%s\n%s\n\n", line, text, line)
}
