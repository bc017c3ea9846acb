package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"oiltrack-service/internal/model"
	"oiltrack-service/internal/repository"
)

// ExportService serializes the ledger to a portable snapshot file. It reads
// through the repositories only and carries no knowledge of the storage
// engine, so the snapshot format survives a store swap.
type ExportService struct {
	oilTypes *repository.OilTypeRepository
	events   *repository.ChangeEventRepository
	dataDir  string
	dbFile   string
	log      zerolog.Logger
}

func NewExportService(db *gorm.DB, dataDir, dbFile string, log zerolog.Logger) *ExportService {
	return &ExportService{
		oilTypes: repository.NewOilTypeRepository(db),
		events:   repository.NewChangeEventRepository(db),
		dataDir:  dataDir,
		dbFile:   dbFile,
		log:      log,
	}
}

// SnapshotOilType mirrors the persisted oil type attributes without the name,
// which becomes the map key.
type SnapshotOilType struct {
	MaxDistance       int64   `json:"max_distance"`
	RemainingDistance int64   `json:"remaining_distance"`
	Image             string  `json:"image"`
	LiterCapacity     float64 `json:"liter_capacity"`
	Grade             string  `json:"grade"`
}

// Snapshot is the round-trippable export document: all oil types keyed by
// name plus the full change history, most-recent-first.
type Snapshot struct {
	OilTypes map[string]SnapshotOilType `json:"oil_types"`
	Changes  []model.ChangeEvent        `json:"changes"`
}

// SnapshotInfo describes a written snapshot file.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	OilTypes  int       `json:"oil_types"`
	Changes   int       `json:"changes"`
	CreatedAt time.Time `json:"created_at"`
}

// BuildSnapshot assembles the export document without touching the filesystem.
func (s *ExportService) BuildSnapshot(ctx context.Context) (*Snapshot, error) {
	oils, err := s.oilTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list oil types: %v", ErrPersistence, err)
	}
	events, err := s.events.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: list change events: %v", ErrPersistence, err)
	}

	snapshot := &Snapshot{
		OilTypes: make(map[string]SnapshotOilType, len(oils)),
		Changes:  events,
	}
	for _, oil := range oils {
		snapshot.OilTypes[oil.Name] = SnapshotOilType{
			MaxDistance:       oil.MaxDistance,
			RemainingDistance: oil.RemainingDistance,
			Image:             oil.Image,
			LiterCapacity:     oil.LiterCapacity,
			Grade:             oil.Grade,
		}
	}
	return snapshot, nil
}

// ExportSnapshot writes the snapshot to
// <data dir>/<db basename>_backup_<YYYYMMDD_HHMMSS>.json. The file is distinct
// from the schema-upgrade database backup.
func (s *ExportService) ExportSnapshot(ctx context.Context) (*SnapshotInfo, error) {
	snapshot, err := s.BuildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode snapshot: %v", ErrPersistence, err)
	}

	now := time.Now()
	base := strings.TrimSuffix(s.dbFile, filepath.Ext(s.dbFile))
	path := filepath.Join(s.dataDir, fmt.Sprintf("%s_backup_%s.json", base, now.Format("20060102_150405")))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write snapshot file: %v", ErrPersistence, err)
	}

	info := &SnapshotInfo{
		ID:        uuid.NewString(),
		Path:      path,
		OilTypes:  len(snapshot.OilTypes),
		Changes:   len(snapshot.Changes),
		CreatedAt: now,
	}

	s.log.Info().
		Str("snapshot_id", info.ID).
		Str("path", info.Path).
		Int("oil_types", info.OilTypes).
		Int("changes", info.Changes).
		Msg("snapshot exported")
	return info, nil
}
