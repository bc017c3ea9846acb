package db

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"oiltrack-service/internal/config"
)

// schemaVersion is stamped into the database file via PRAGMA user_version.
// An existing file carrying any other version is backed up and recreated.
const schemaVersion = 1

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := cfg.DBPath()
	if err := prepareFile(path, log); err != nil {
		return nil, err
	}

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}
	if err := database.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)).Error; err != nil {
		return nil, fmt.Errorf("stamp schema version: %w", err)
	}
	if err := SeedDefaults(database); err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Msg("database ready")
	return database, nil
}

// prepareFile applies the backup-then-recreate policy: an existing database
// file with a mismatched schema version is copied to a timestamped backup and
// removed, so the caller starts from a fresh schema. User data survives only
// as the dated backup file.
func prepareFile(path string, log zerolog.Logger) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	version, err := fileSchemaVersion(path)
	if err != nil {
		return err
	}
	if version == schemaVersion {
		return nil
	}

	backup := backupPath(path, time.Now())
	if err := copyFile(path, backup); err != nil {
		return fmt.Errorf("back up database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove stale database: %w", err)
	}

	log.Warn().
		Int("found_version", version).
		Int("want_version", schemaVersion).
		Str("backup", backup).
		Msg("incompatible database file backed up and recreated")
	return nil
}

func fileSchemaVersion(path string) (int, error) {
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		// Unreadable file counts as incompatible.
		return -1, nil
	}

	var version int
	readErr := database.Raw("PRAGMA user_version").Scan(&version).Error

	if sqlDB, dbErr := database.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	if readErr != nil {
		return -1, nil
	}
	return version, nil
}

// backupPath derives <dir>/<basename>_backup_<YYYYMMDD_HHMMSS><ext> from the
// database file location.
func backupPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	name := fmt.Sprintf("%s_backup_%s%s", base, now.Format("20060102_150405"), ext)
	return filepath.Join(filepath.Dir(path), name)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
