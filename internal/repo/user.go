package repo

import (
	"errors"
	"log"
	"strconv"

	"debugmate-backend/internal/models"

	"gorm.io/gorm"
)

// DefaultRole is assumed when a user has no user_perms row; unknown roles
// get the most restrictive access scope downstream.
const DefaultRole = "Employee"

type UserRepo struct {
	db *gorm.DB
}

type UserRepoInterface interface {
	GetUserID(email string) (string, error)
	GetRole(email string) string
}

func NewUserRepository(db *gorm.DB) UserRepoInterface {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetUserID(email string) (string, error) {
	var perm models.UserPerm
	err := r.db.Select("id").Where("email = ?", email).First(&perm).Error
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(perm.ID, 10), nil
}

// GetRole never fails: lookup errors are logged and the default role is
// returned, keeping the chat flow alive.
func (r *UserRepo) GetRole(email string) string {
	var perm models.UserPerm
	err := r.db.Select("role").Where("email = ?", email).First(&perm).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠ role lookup error for %s: %v", email, err)
		}
		return DefaultRole
	}
	if perm.Role == "" {
		return DefaultRole
	}
	return perm.Role
}
