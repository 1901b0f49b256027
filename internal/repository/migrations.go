package repository

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/medtrack/diabetes-monitor/internal/logger"
	"gorm.io/gorm"
)

//go:embed seed/*.sql
var seedFS embed.FS

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// RunSeedMigrations executes the embedded SQL migrations that have not run
// yet. Each file runs at most once per database; reference data therefore
// stays read-only after the first boot.
func RunSeedMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := seedFS.ReadDir("seed")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}
	executedMap := make(map[string]bool, len(executed))
	for _, m := range executed {
		executedMap[m.ID] = true
	}

	for _, name := range names {
		id := strings.TrimSuffix(name, ".sql")
		if executedMap[id] {
			continue
		}

		content, err := seedFS.ReadFile("seed/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		logger.Info("Running migration", "id", id)
		if err := db.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		if err := db.Create(&MigrationRecord{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}
	}

	return nil
}
