package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// Classifier decides whether an error is transient and worth retrying.
type Classifier interface {
	IsTransient(err error) bool
}

// Transient PostgreSQL error codes outside the blanket-retried classes.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

// PostgreSQLClassifier recognizes transient PostgreSQL and network errors.
type PostgreSQLClassifier struct{}

// NewPostgreSQLClassifier creates a new PostgreSQL error classifier.
func NewPostgreSQLClassifier() *PostgreSQLClassifier {
	return &PostgreSQLClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *PostgreSQLClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}

	return isNetworkError(err) || matchesTransientMessage(err)
}

func isTransientPgCode(code string) bool {
	// Class 08 (connection exception), class 53 (insufficient resources),
	// and class 57 (operator intervention) are retryable wholesale.
	switch {
	case strings.HasPrefix(code, "08"),
		strings.HasPrefix(code, "53"),
		strings.HasPrefix(code, "57"):
		return true
	}

	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}
		for _, errno := range []syscall.Errno{
			syscall.ECONNREFUSED,
			syscall.ECONNRESET,
			syscall.ENETUNREACH,
			syscall.EHOSTUNREACH,
		} {
			if errors.Is(opErr.Err, errno) {
				return true
			}
		}
	}

	return false
}

// matchesTransientMessage catches connection failures that surface as plain
// errors without a PgError or net.OpError wrapper.
func matchesTransientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"connection failure",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"too many connections",
		"server closed the connection",
		"unexpected eof",
		"connection pool exhausted",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
