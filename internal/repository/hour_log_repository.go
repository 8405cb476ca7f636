package repository

import (
	"context"

	"github.com/yukikurage/worklog-api/internal/database"
	"github.com/yukikurage/worklog-api/internal/models"
	"gorm.io/gorm"
)

// GormHourLogRepository is a GORM implementation of HourLogRepository
type GormHourLogRepository struct {
	db *gorm.DB
}

// NewHourLogRepository creates a new HourLogRepository
func NewHourLogRepository(db *gorm.DB) HourLogRepository {
	return &GormHourLogRepository{db: db}
}

func (r *GormHourLogRepository) Create(ctx context.Context, log *models.HourLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormHourLogRepository) FindByID(ctx context.Context, id uint64) (*models.HourLog, error) {
	var log models.HourLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// List retrieves hour logs ordered by date. From and To are inclusive.
func (r *GormHourLogRepository) List(ctx context.Context, filter HourLogFilter) ([]models.HourLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.HourLog{}).Where("owner_id = ?", filter.OwnerID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.HourLog{}
	if err := query.Order("date ASC, id ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *GormHourLogRepository) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.HourLog{}).Where("id = ?", id).Updates(fields).Error
}

func (r *GormHourLogRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.HourLog{}).Error
}
