package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablekit/bulkload/internal/config"
	"github.com/tablekit/bulkload/internal/tui"
)

// connectionFlags are the connection settings shared by commands that talk
// to the database.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	promptPassword bool
}

// registerConnectionFlags wires the standard connection flag set onto cmd.
func registerConnectionFlags(cmd *cobra.Command, flags *connectionFlags) {
	cmd.Flags().StringVar(&flags.connection, "connection", "",
		"PostgreSQL connection string (URI or keyword format).\n"+
			"Mutually exclusive with granular flags (--host, --port, --username).\n"+
			"Alternative: DATABASE_URL environment variable.")
	cmd.Flags().StringVar(&flags.host, "host", "",
		"PostgreSQL server host (default: $PGHOST or localhost)")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0,
		"PostgreSQL server port (default: $PGPORT or 5432)")
	cmd.Flags().StringVarP(&flags.username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER or current OS user)")
	cmd.Flags().StringVarP(&flags.database, "database", "d", "",
		"Target database name (default: $PGDATABASE)")
	cmd.Flags().StringVar(&flags.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")
	cmd.Flags().BoolVarP(&flags.promptPassword, "password", "W", false,
		"Force an interactive password prompt (otherwise $PGPASSWORD,\n"+
			"~/.pgpass, or the connection string supply the password)")
}

// resolveConnString builds a pgx connection string from flags, the project
// config file, and PG* environment conventions, in that precedence order.
// Fields left unresolved here are filled in by pgx itself from the
// environment and its defaults.
func resolveConnString(flags connectionFlags, cfg *config.ConnectionConfig) (string, error) {
	if flags.connection != "" {
		if hasGranularFlags(flags) {
			return "", fmt.Errorf("--connection is mutually exclusive with --host/--port/--username/--database/--sslmode")
		}
		return withPromptedPassword(flags, flags.connection)
	}
	if url := os.Getenv("DATABASE_URL"); url != "" && !hasGranularFlags(flags) {
		return withPromptedPassword(flags, url)
	}

	var fileCfg config.ConnectionConfig
	if cfg != nil {
		fileCfg = *cfg
	}

	var parts []string
	if host := firstOf(flags.host, fileCfg.Host); host != "" {
		parts = append(parts, "host="+kvQuote(host))
	}
	if flags.port != 0 {
		parts = append(parts, "port="+strconv.Itoa(flags.port))
	} else if fileCfg.Port != 0 {
		parts = append(parts, "port="+strconv.Itoa(fileCfg.Port))
	}
	if user := firstOf(flags.username, fileCfg.Username); user != "" {
		parts = append(parts, "user="+kvQuote(user))
	}
	if db := firstOf(flags.database, fileCfg.Database); db != "" {
		parts = append(parts, "dbname="+kvQuote(db))
	}
	if mode := firstOf(flags.sslMode, fileCfg.SSLMode); mode != "" {
		parts = append(parts, "sslmode="+kvQuote(mode))
	}

	return withPromptedPassword(flags, strings.Join(parts, " "))
}

// withPromptedPassword appends an interactively read password when -W was
// given. URI-style connection strings cannot be amended this way.
func withPromptedPassword(flags connectionFlags, connString string) (string, error) {
	if !flags.promptPassword {
		return connString, nil
	}
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		return "", fmt.Errorf("--password cannot be combined with a URI connection string; embed the password or use $PGPASSWORD")
	}

	password, err := tui.ReadPassword("Password: ")
	if err != nil {
		return "", err
	}
	if connString == "" {
		return "password=" + kvQuote(password), nil
	}
	return connString + " password=" + kvQuote(password), nil
}

func hasGranularFlags(flags connectionFlags) bool {
	return flags.host != "" || flags.port != 0 || flags.username != "" ||
		flags.database != "" || flags.sslMode != ""
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// kvQuote quotes a keyword/value DSN value when it needs it.
func kvQuote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}
