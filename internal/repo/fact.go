package repo

import (
	"errors"
	"time"

	"debugmate-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FactRepo struct {
	db *gorm.DB
}

type FactRepoInterface interface {
	GetFacts(userID string) (map[string]string, error)
	StoreFact(userID, key, value string, confidence float64) error
}

func NewFactRepository(db *gorm.DB) FactRepoInterface {
	return &FactRepo{db: db}
}

// GetFacts returns the current snapshot for a user, last write wins per key.
func (r *FactRepo) GetFacts(userID string) (map[string]string, error) {
	var rows []models.UserFact
	err := r.db.Select("fact_key", "fact_value").
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	facts := make(map[string]string, len(rows))
	for _, row := range rows {
		facts[row.FactKey] = row.FactValue
	}
	return facts, nil
}

// StoreFact upserts one fact: an existing (user, key) row is updated in
// place, never duplicated.
func (r *FactRepo) StoreFact(userID, key, value string, confidence float64) error {
	var existing models.UserFact
	err := r.db.Where("user_id = ? AND fact_key = ?", userID, key).First(&existing).Error

	switch {
	case err == nil:
		return r.db.Model(&existing).Updates(map[string]interface{}{
			"fact_value": value,
			"confidence": confidence,
			"updated_at": time.Now().UTC(),
		}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now().UTC()
		return r.db.Create(&models.UserFact{
			UUID:       uuid.New(),
			UserID:     userID,
			FactKey:    key,
			FactValue:  value,
			Confidence: confidence,
			CreatedAt:  now,
			UpdatedAt:  now,
		}).Error
	default:
		return err
	}
}
