package tui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirm asks the user to confirm a destructive action. The default answer
// is no. Non-interactive sessions cannot confirm and always return false;
// callers are expected to offer a --force flag for automation.
func Confirm(message string) bool {
	if !IsInteractive() {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s [y/N]: ", message)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// ReadPassword prompts for a password without echoing it. Fails in
// non-interactive sessions; automation should use $PGPASSWORD or a
// connection string instead.
func ReadPassword(prompt string) (string, error) {
	if !IsInteractive() {
		return "", fmt.Errorf("cannot prompt for password in non-interactive mode (set PGPASSWORD)")
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
