package db

import (
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"oiltrack-service/internal/config"
	"oiltrack-service/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		Store: config.StoreConfig{
			DataDir: t.TempDir(),
			DBFile:  "oiltrack.db",
			LogFile: "oiltrack.log",
		},
		Ledger: config.LedgerConfig{HistoryLimit: 50},
	}
}

func closeDB(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func countOilTypes(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gdb.Model(&model.OilType{}).Count(&count).Error)
	return count
}

func backupFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^oiltrack_backup_\d{8}_\d{6}\.db$`)
	var names []string
	for _, entry := range entries {
		if pattern.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names
}

func TestNew_CreatesAndSeeds(t *testing.T) {
	cfg := testConfig(t)

	gdb, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeDB(t, gdb)

	assert.FileExists(t, cfg.DBPath())
	assert.Equal(t, int64(2), countOilTypes(t, gdb))

	var oil model.OilType
	require.NoError(t, gdb.Where("name = ?", "10W-40").First(&oil).Error)
	assert.Equal(t, int64(5000), oil.MaxDistance)
	assert.Equal(t, int64(5000), oil.RemainingDistance)
	assert.Equal(t, 4.0, oil.LiterCapacity)

	var oil2 model.OilType
	require.NoError(t, gdb.Where("name = ?", "5W-30").First(&oil2).Error)
	assert.Equal(t, int64(6000), oil2.MaxDistance)
	assert.Equal(t, 5.0, oil2.LiterCapacity)

	assert.Empty(t, backupFiles(t, cfg.Store.DataDir))
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	cfg := testConfig(t)

	gdb, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeDB(t, gdb)

	require.NoError(t, SeedDefaults(gdb))
	require.NoError(t, SeedDefaults(gdb))
	assert.Equal(t, int64(2), countOilTypes(t, gdb))
}

func TestSeedDefaults_DoesNotClobberUserData(t *testing.T) {
	cfg := testConfig(t)

	gdb, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeDB(t, gdb)

	require.NoError(t, gdb.Model(&model.OilType{}).
		Where("name = ?", "10W-40").
		Update("remaining_distance", 123).Error)

	require.NoError(t, SeedDefaults(gdb))

	var oil model.OilType
	require.NoError(t, gdb.Where("name = ?", "10W-40").First(&oil).Error)
	assert.Equal(t, int64(123), oil.RemainingDistance)
}

func TestNew_KeepsCompatibleFile(t *testing.T) {
	cfg := testConfig(t)

	gdb, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&model.OilType{
		Name: "custom", MaxDistance: 7000, RemainingDistance: 6500, LiterCapacity: 4.5, Grade: "5W-40",
	}).Error)
	closeDB(t, gdb)

	reopened, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeDB(t, reopened)

	assert.Equal(t, int64(3), countOilTypes(t, reopened))
	assert.Empty(t, backupFiles(t, cfg.Store.DataDir))
}

func TestNew_BacksUpIncompatibleFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Store.DataDir, 0o755))

	// A foreign database file: has tables but no schema version stamp.
	legacy, err := gorm.Open(sqlite.Open(cfg.DBPath()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, legacy.Exec("CREATE TABLE legacy_notes (id INTEGER PRIMARY KEY, body TEXT)").Error)
	closeDB(t, legacy)

	gdb, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeDB(t, gdb)

	backups := backupFiles(t, cfg.Store.DataDir)
	require.Len(t, backups, 1)

	assert.False(t, gdb.Migrator().HasTable("legacy_notes"))
	assert.Equal(t, int64(2), countOilTypes(t, gdb))
}

func TestBackupPath(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)
	assert.Equal(t,
		"/data/oiltrack_backup_20260831_140509.db",
		backupPath("/data/oiltrack.db", now))
}
