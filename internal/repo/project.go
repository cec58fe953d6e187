package repo

import (
	"encoding/json"

	"debugmate-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

type ProjectRepoInterface interface {
	FirstAssignedProject(email string) (*models.Project, error)
	GetProjectRow(projectID string) (map[string]interface{}, error)
}

func NewProjectRepository(db *gorm.DB) ProjectRepoInterface {
	return &ProjectRepo{db: db}
}

// FirstAssignedProject returns the first project whose assigned_to_emails
// contains the email, or nil when the user has none.
func (r *ProjectRepo) FirstAssignedProject(email string) (*models.Project, error) {
	b, _ := json.Marshal([]string{email})

	var projects []models.Project
	err := r.db.Where("assigned_to_emails @> ?", datatypes.JSON(b)).
		Limit(1).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

// GetProjectRow fetches one project as a column→value map for the response
// composer.
func (r *ProjectRepo) GetProjectRow(projectID string) (map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.Table("projects").Where("uuid = ?", projectID).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
