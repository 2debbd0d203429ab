package testutil

import (
	"os"
	"testing"
)

// MustSetTestEnvironment forces GO_ENV=test so config.Load picks the test
// profile and no helper can accidentally touch a development database.
// Call it first in every test that opens a database.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("failed to set GO_ENV=test: %v", err)
	}
}

// RequireTestEnvironment fails the test unless GO_ENV is already "test".
// Use it in tests that must never run against a real database, even by
// mistake.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("refusing to run outside the test environment (GO_ENV=%q)", env)
	}
}
