// Package migrations exposes the embedded accounts schema to migration
// runners. Postgres is the canonical dialect at the tree root; sqlite keeps
// rewritten copies of every version under sqlite/.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	walletaccounts "github.com/goliatone/go-wallet-accounts"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const embeddedRoot = "data/sql/migrations"

// dialectSubdirs maps each supported dialect to its directory below the
// embedded root. An empty subdir means the dialect owns the root itself.
var dialectSubdirs = []struct {
	dialect string
	subdir  string
}{
	{dialect: DialectPostgres, subdir: ""},
	{dialect: DialectSQLite, subdir: "sqlite"},
}

type FilesystemSpec struct {
	Dialect string
	Path    string
	FS      fs.FS
}

type Registration struct {
	SourceLabel       string
	ValidationTargets []string
	Filesystems       []FilesystemSpec
}

type RegisterFunc func(ctx context.Context, dialect string, sourceLabel string, fsys fs.FS) error

type Option func(*Registration)

func WithSourceLabel(label string) Option {
	return func(r *Registration) {
		trimmed := strings.TrimSpace(label)
		if trimmed != "" {
			r.SourceLabel = trimmed
		}
	}
}

// WithValidationTargets restricts registration to the named dialects. A
// sqlite-only consumer registers just the sqlite tree and skips postgres.
func WithValidationTargets(targets ...string) Option {
	return func(r *Registration) {
		next := normalizeDialects(targets)
		if len(next) == 0 {
			return
		}
		r.ValidationTargets = next
	}
}

// Filesystems resolves one filesystem per supported dialect from the embedded
// migration tree, refusing trees with unpaired up/down scripts.
func Filesystems() ([]FilesystemSpec, error) {
	root, err := fs.Sub(walletaccounts.GetMigrationsFS(), embeddedRoot)
	if err != nil {
		return nil, fmt.Errorf("migrations: resolve embedded root %q: %w", embeddedRoot, err)
	}

	filesystems := make([]FilesystemSpec, 0, len(dialectSubdirs))
	for _, layout := range dialectSubdirs {
		fsys := root
		specPath := embeddedRoot
		if layout.subdir != "" {
			fsys, err = fs.Sub(root, layout.subdir)
			if err != nil {
				return nil, fmt.Errorf("migrations: resolve %s filesystem: %w", layout.dialect, err)
			}
			specPath = path.Join(embeddedRoot, layout.subdir)
		}
		if err := checkVersionPairs(layout.dialect, specPath, fsys); err != nil {
			return nil, err
		}
		filesystems = append(filesystems, FilesystemSpec{
			Dialect: layout.dialect,
			Path:    specPath,
			FS:      fsys,
		})
	}

	return filesystems, nil
}

// Register hands each targeted dialect's filesystem to registerFn, typically a
// go-persistence-bun migration source hook.
func Register(ctx context.Context, registerFn RegisterFunc, opts ...Option) (Registration, error) {
	reg := Registration{
		SourceLabel:       "go-wallet-accounts",
		ValidationTargets: []string{DialectPostgres, DialectSQLite},
	}

	filesystems, err := Filesystems()
	if err != nil {
		return reg, err
	}
	reg.Filesystems = filesystems

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&reg)
	}

	if registerFn == nil {
		return reg, fmt.Errorf("migrations: register function is required")
	}

	registered := 0
	for _, fsys := range reg.Filesystems {
		if !slices.Contains(reg.ValidationTargets, fsys.Dialect) {
			continue
		}
		if err := registerFn(ctx, fsys.Dialect, reg.SourceLabel, fsys.FS); err != nil {
			return reg, fmt.Errorf("migrations: register %s (%s): %w", fsys.Dialect, fsys.Path, err)
		}
		registered++
	}
	if registered == 0 {
		return reg, fmt.Errorf("migrations: no supported dialect in targets %v", reg.ValidationTargets)
	}

	return reg, nil
}

// checkVersionPairs verifies every schema version ships both directions, so a
// rollback never strands a dialect mid-version.
func checkVersionPairs(dialect string, specPath string, fsys fs.FS) error {
	ups, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("migrations: glob %s %s: %w", dialect, specPath, err)
	}
	if len(ups) == 0 {
		return fmt.Errorf("migrations: %s filesystem %q has no *.up.sql files", dialect, specPath)
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := fs.Stat(fsys, down); err != nil {
			return fmt.Errorf("migrations: %s version %s has no down script: %w", dialect, up, err)
		}
	}
	return nil
}

func normalizeDialects(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(strings.ToLower(value))
		if trimmed == "" || slices.Contains(out, trimmed) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
