package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
)

func (d *Database) CreateJob(job *models.Job) error {
	return d.db.Create(job).Error
}

func (d *Database) GetJob(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := d.db.Preload("Company").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (d *Database) UpdateJob(job *models.Job) error {
	return d.db.Save(job).Error
}

// ListJobs returns open jobs, filtered by a title substring when one is given.
func (d *Database) ListJobs(titleQuery string) ([]models.Job, error) {
	var jobs []models.Job

	query := d.db.Where("is_archived = ?", false).Preload("Company")
	if titleQuery != "" {
		query = query.Where("title ILIKE ?", "%"+titleQuery+"%")
	}

	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}
