package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const upMigrationSuffix = ".up.sql"

// Migrate applies every *.up.sql file of folder/<driver> in lexical order.
// Each driver keeps its own DDL; the migrations are written to be
// re-runnable.
func Migrate(ctx context.Context, db *sqlx.DB, folder string) error {
	folder = filepath.Join(folder, db.DriverName())
	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("read migrations folder: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upMigrationSuffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(folder, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		zap.L().Debug("migration applied", zap.String("file", file))
	}

	return nil
}
