package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/worklog-api/internal/models"
	"gorm.io/gorm"
)

type indexDef struct {
	model   interface{}
	table   string
	name    string
	columns string
}

var indexes = []indexDef{
	// Ownership filters back every list endpoint
	{&models.Task{}, "tasks", "idx_tasks_owner_status", "owner_id, status"},
	{&models.Task{}, "tasks", "idx_tasks_due_date", "due_date"},

	// Range queries over a user's timesheet
	{&models.HourLog{}, "hour_logs", "idx_hour_logs_owner_date", "owner_id, date"},

	{&models.Report{}, "reports", "idx_reports_owner_id", "owner_id"},
	{&models.Report{}, "reports", "idx_reports_status", "status"},
}

// AddIndexes adds the secondary indexes used by list and range queries.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}

// MigrateDatabase runs schema migrations followed by index creation.
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
