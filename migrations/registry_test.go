package migrations

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	walletaccounts "github.com/goliatone/go-wallet-accounts"
)

func TestFilesystems_ReturnsPostgresAndSQLite(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected 2 filesystems, got %d", len(filesystems))
	}

	var postgresFound bool
	var sqliteFound bool
	for _, entry := range filesystems {
		matches, globErr := fs.Glob(entry.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", entry.Dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("expected %s migration files, got none", entry.Dialect)
		}
		switch entry.Dialect {
		case DialectPostgres:
			postgresFound = true
		case DialectSQLite:
			sqliteFound = true
		}
	}

	if !postgresFound {
		t.Fatalf("expected postgres filesystem")
	}
	if !sqliteFound {
		t.Fatalf("expected sqlite filesystem")
	}
}

func TestRegister_UsesValidationTargets(t *testing.T) {
	var calls []string
	_, err := Register(context.Background(), func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		calls = append(calls, dialect)
		return nil
	}, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 registration call, got %d", len(calls))
	}
	if calls[0] != DialectSQLite {
		t.Fatalf("expected sqlite registration, got %q", calls[0])
	}
}

func TestRegister_RejectsUnsupportedTargets(t *testing.T) {
	_, err := Register(context.Background(), func(context.Context, string, string, fs.FS) error {
		t.Fatalf("unexpected registration call")
		return nil
	}, WithValidationTargets("mysql"))
	if err == nil {
		t.Fatalf("expected unsupported dialect rejection")
	}
}

func TestRegister_AppliesSourceLabel(t *testing.T) {
	var label string
	_, err := Register(context.Background(), func(_ context.Context, _ string, sourceLabel string, _ fs.FS) error {
		label = sourceLabel
		return nil
	}, WithValidationTargets(DialectSQLite), WithSourceLabel("tenant-accounts"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if label != "tenant-accounts" {
		t.Fatalf("expected custom source label, got %q", label)
	}
}

func TestCheckVersionPairs_RejectsMissingDownScript(t *testing.T) {
	fsys := fstest.MapFS{
		"20260101000000_accounts_schema.up.sql": &fstest.MapFile{Data: []byte("CREATE TABLE accounts (id TEXT);")},
	}
	err := checkVersionPairs(DialectSQLite, "data/sql/migrations/sqlite", fsys)
	if err == nil {
		t.Fatalf("expected unpaired version rejection")
	}
	if !strings.Contains(err.Error(), "down script") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAccountsSchemaMigrationPair_ExistsForBothDialects(t *testing.T) {
	root := walletaccounts.GetMigrationsFS()
	paths := []string{
		"data/sql/migrations/20260101000000_accounts_schema.up.sql",
		"data/sql/migrations/20260101000000_accounts_schema.down.sql",
		"data/sql/migrations/sqlite/20260101000000_accounts_schema.up.sql",
		"data/sql/migrations/sqlite/20260101000000_accounts_schema.down.sql",
	}
	for _, migrationPath := range paths {
		content, err := fs.ReadFile(root, migrationPath)
		if err != nil {
			t.Fatalf("read migration %s: %v", migrationPath, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			t.Fatalf("expected migration %s to have SQL content", migrationPath)
		}
	}
}
