package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/models"
)

func (d *Database) SaveApplication(application *models.Application) error {
	return d.db.Create(application).Error
}

func (d *Database) FindApplication(userID, jobID uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := d.db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (d *Database) GetApplication(id uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := d.db.Preload("User").Preload("Job").First(&application, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (d *Database) ListJobApplications(jobID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := d.db.Where("job_id = ?", jobID).
		Order("created_at ASC").
		Preload("User").
		Find(&applications).Error
	return applications, err
}

func (d *Database) UpdateApplicationStatus(id uuid.UUID, status models.ApplicationStatus) error {
	return d.db.Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error
}
