package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tablekit/bulkload/internal/config"
	"github.com/tablekit/bulkload/internal/csvsource"
	"github.com/tablekit/bulkload/internal/logging"
	"github.com/tablekit/bulkload/internal/pgexec"
	"github.com/tablekit/bulkload/internal/retry"
	"github.com/tablekit/bulkload/internal/tui"
	"github.com/tablekit/bulkload/pkg/bulkload"
)

var loadCmd = &cobra.Command{
	Use:   "load <csv-file>",
	Short: "Load a CSV file into a table",
	Long: `Load reads a CSV file, validates each record, and bulk-loads the accepted
records into the target table in chunks. When --conflict is given the load
uses UPSERT semantics (insert new rows, update rows conflicting on the
given columns); otherwise plain INSERT, optionally after truncating the
table with --truncate.

Records failing validation are skipped and reported; they never reach the
database. The load is not wrapped in a transaction: chunks committed before
a failure stay committed.

Password Authentication:
  Password is NOT accepted as a CLI flag. Use $PGPASSWORD, ~/.pgpass, a
  connection string, or -W to prompt interactively.

Examples:
  # Append all rows of users.csv to the users table
  bulkload load users.csv --table users -d mydb

  # Replace the table contents
  bulkload load users.csv --table users -d mydb --truncate

  # Upsert keyed on email, requiring the email column to be non-empty
  bulkload load users.csv --table app.users -d mydb \
    --conflict email --require email

  # Smaller chunks for wide tables
  bulkload load wide.csv --table metrics -d mydb --limit 250`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

type loadFlagValues struct {
	table    string
	schema   string
	conflict []string
	truncate bool
	limit    int
	require  []string
	columns  []string
	retries  int
	timeout  time.Duration
	conn     connectionFlags
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadFlags.table, "table", "t", "",
		"Destination table, optionally schema-qualified (app.users)")
	loadCmd.Flags().StringVar(&loadFlags.schema, "schema", "",
		"Destination schema (overridden by a schema-qualified --table)")
	loadCmd.Flags().StringSliceVar(&loadFlags.conflict, "conflict", nil,
		"Conflict-key column(s); presence switches the load to UPSERT")
	loadCmd.Flags().BoolVar(&loadFlags.truncate, "truncate", false,
		"Truncate the table before inserting (incompatible with --conflict)")
	loadCmd.Flags().IntVar(&loadFlags.limit, "limit", 0,
		fmt.Sprintf("Maximum rows per execution batch (default %d)", bulkload.DefaultChunkLimit))
	loadCmd.Flags().StringSliceVar(&loadFlags.require, "require", nil,
		"Column(s) that must be non-empty for a record to be loaded")
	loadCmd.Flags().StringSliceVar(&loadFlags.columns, "columns", nil,
		"Column(s) to load (default: every CSV column)")
	loadCmd.Flags().IntVar(&loadFlags.retries, "retries", 3,
		"Retry attempts per batch for transient database errors (0 disables)")
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", 10*time.Minute,
		"Catastrophic failure protection timeout")
	registerConnectionFlags(loadCmd, &loadFlags.conn)

	_ = loadCmd.MarkFlagRequired("table")
	loadCmd.MarkFlagsMutuallyExclusive("truncate", "conflict")
}

func runLoad(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))

	cfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("read %s: %w", config.ConfigFileName, err)
	}

	limit := loadFlags.limit
	required := loadFlags.require
	schema := loadFlags.schema
	var connCfg *config.ConnectionConfig
	if cfg != nil {
		connCfg = &cfg.Connection
		if limit == 0 {
			limit = cfg.Load.Limit
		}
		if len(required) == 0 {
			required = cfg.Load.Required
		}
		if schema == "" {
			schema = cfg.Load.Schema
		}
	}
	if limit == 0 {
		limit = bulkload.DefaultChunkLimit
	}
	if limit < 1 {
		return fmt.Errorf("chunk limit must be positive, got %d: %w", limit, bulkload.ErrInvalidLimit)
	}

	table, err := parseTable(loadFlags.table, schema)
	if err != nil {
		return err
	}

	connString, err := resolveConnString(loadFlags.conn, connCfg)
	if err != nil {
		return err
	}

	runID := uuid.New()
	logger.Verbose("run %s: loading %s into %s", runID, args[0], table)

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	records, err := csvsource.Read(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	loader, err := bulkload.New(records, csvsource.Processor(required, loadFlags.columns))
	if err != nil {
		return fmt.Errorf("validate %s: %w", args[0], err)
	}
	reportRejected(logger, loader)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, loadFlags.timeout)
	defer cancel()

	retrier := retry.NewExecutor(retry.NewPostgreSQLClassifier(), retry.NewBackoff(loadFlags.retries)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Info("transient error (%v), retry %d in %s", err, attempt+1, delay.Round(time.Millisecond))
		})

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()
	err = retrier.Execute(ctx, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	loader.SetLimit(limit).
		SetTable(table).
		SetExecutor(pgexec.New(pool, pgexec.WithLogger(logger))).
		SetLogger(logger)

	start := time.Now()
	if err := executeLoad(ctx, loader, retrier); err != nil {
		fmt.Println(tui.Failure(fmt.Sprintf("load failed: %v", err)))
		return err
	}

	fmt.Println(tui.Success(fmt.Sprintf("loaded %d rows into %s in %s (%d rejected)",
		loader.DataCount(), table, time.Since(start).Round(time.Millisecond), loader.FailureDataCount())))
	return nil
}

// executeLoad drives the loader chunk by chunk so the progress display can
// follow along.
func executeLoad(ctx context.Context, loader *bulkload.Loader[csvsource.Record], retrier *retry.Executor) error {
	query, err := loader.Query()
	if err != nil {
		return err
	}

	label := fmt.Sprintf("loading %s", query.Table())
	return tui.RunWithProgress(label, loader.DataCount(), func(report func(done int)) error {
		if loadFlags.truncate {
			if err := query.Truncate(ctx); err != nil {
				return err
			}
		}

		done := 0
		return loader.BulkProcess(ctx, func(ctx context.Context, chunk []bulkload.Row) error {
			// A mid-chunk retry reissues the whole batch; with --conflict
			// that is a safe upsert replay, plain inserts may duplicate
			// rows already written before the failure.
			err := retrier.Execute(ctx, func(ctx context.Context) error {
				if len(loadFlags.conflict) > 0 {
					return query.Upsert(ctx, chunk, loadFlags.conflict)
				}
				return query.Insert(ctx, chunk)
			})
			if err != nil {
				return err
			}
			done += len(chunk)
			report(done)
			return nil
		})
	})
}

// reportRejected surfaces validation rejects before any database work.
func reportRejected(logger *logging.ConsoleLogger, loader *bulkload.Loader[csvsource.Record]) {
	rejected := loader.FailureData()
	if len(rejected) == 0 {
		return
	}
	logger.Info("%d of %d records rejected by validation", len(rejected), loader.DataCount()+len(rejected))
	for i, record := range rejected {
		logger.Verbose("rejected record %d: %v", i+1, record)
	}
}

// parseTable splits an optionally schema-qualified table name.
func parseTable(name, defaultSchema string) (bulkload.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return bulkload.Table{}, fmt.Errorf("table name is required: %w", bulkload.ErrNoTable)
	}

	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		if parts[0] == "" || parts[1] == "" {
			return bulkload.Table{}, fmt.Errorf("invalid table name %q", name)
		}
		return bulkload.Table{Schema: parts[0], Name: parts[1]}, nil
	}
	return bulkload.Table{Schema: defaultSchema, Name: name}, nil
}
