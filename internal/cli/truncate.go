package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tablekit/bulkload/internal/config"
	"github.com/tablekit/bulkload/internal/logging"
	"github.com/tablekit/bulkload/internal/pgexec"
	"github.com/tablekit/bulkload/internal/tui"
)

var truncateCmd = &cobra.Command{
	Use:   "truncate",
	Short: "Remove all rows from a table",
	Long: `Truncate removes every row from the target table. This is destructive and
cannot be undone, so interactive sessions are asked to confirm; automation
must pass --force.

Examples:
  bulkload truncate --table users -d mydb
  bulkload truncate --table app.users -d mydb --force`,
	Args: cobra.NoArgs,
	RunE: runTruncate,
}

type truncateFlagValues struct {
	table  string
	schema string
	force  bool
	conn   connectionFlags
}

var truncateFlags truncateFlagValues

func init() {
	rootCmd.AddCommand(truncateCmd)

	truncateCmd.Flags().StringVarP(&truncateFlags.table, "table", "t", "",
		"Table to truncate, optionally schema-qualified (app.users)")
	truncateCmd.Flags().StringVar(&truncateFlags.schema, "schema", "",
		"Schema (overridden by a schema-qualified --table)")
	truncateCmd.Flags().BoolVar(&truncateFlags.force, "force", false,
		"Skip the interactive confirmation prompt")
	registerConnectionFlags(truncateCmd, &truncateFlags.conn)

	_ = truncateCmd.MarkFlagRequired("table")
}

func runTruncate(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))

	cfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("read %s: %w", config.ConfigFileName, err)
	}
	var connCfg *config.ConnectionConfig
	schema := truncateFlags.schema
	if cfg != nil {
		connCfg = &cfg.Connection
		if schema == "" {
			schema = cfg.Load.Schema
		}
	}

	table, err := parseTable(truncateFlags.table, schema)
	if err != nil {
		return err
	}

	if !truncateFlags.force && !tui.Confirm(fmt.Sprintf("Remove ALL rows from %s?", table)) {
		return fmt.Errorf("truncate of %s not confirmed (use --force in automation)", table)
	}

	connString, err := resolveConnString(truncateFlags.conn, connCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pgexec.New(pool, pgexec.WithLogger(logger)).Truncate(ctx, table); err != nil {
		fmt.Println(tui.Failure(fmt.Sprintf("truncate failed: %v", err)))
		return err
	}

	fmt.Println(tui.Success(fmt.Sprintf("truncated %s", table)))
	return nil
}
