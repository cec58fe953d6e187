package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project rows are owned by the admin dashboard; this service only reads them.
type Project struct {
	UUID                  uuid.UUID                   `gorm:"type:uuid;primaryKey;" json:"uuid"`
	ProjectName           string                      `json:"project_name"`
	ProjectDescription    string                      `json:"project_description"`
	StartDate             string                      `json:"start_date"`
	EndDate               string                      `json:"end_date"`
	Status                string                      `json:"status"`
	AssignedToEmails      datatypes.JSONSlice[string] `json:"assigned_to_emails"`
	ClientName            string                      `json:"client_name"`
	UploadDocuments       datatypes.JSON              `json:"upload_documents"`
	ProjectScope          string                      `json:"project_scope"`
	TechStack             datatypes.JSONSlice[string] `json:"tech_stack"`
	TechStackCustom       string                      `json:"tech_stack_custom"`
	LeaderOfProject       datatypes.JSONSlice[string] `json:"leader_of_project"`
	ProjectResponsibility string                      `json:"project_responsibility"`
	Role                  string                      `json:"role"`
	RoleAnswers           datatypes.JSON              `json:"role_answers"`
	CustomQuestions       datatypes.JSON              `json:"custom_questions"`
	CustomAnswers         datatypes.JSON              `json:"custom_answers"`
	Priority              string                      `json:"priority"`
}

func (Project) TableName() string {
	return "projects"
}
