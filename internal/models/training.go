package models

import (
	"time"

	"gorm.io/datatypes"
)

// TrainingSet is a named bundle of modules that can be assigned as a unit.
type TrainingSet struct {
	Base
	Name        string         `gorm:"uniqueIndex;not null" json:"name" validate:"required,min=2"`
	Description string         `json:"description"`
	Modules     datatypes.JSON `gorm:"type:jsonb;not null" json:"modules" validate:"required"`
	CreatedBy   string         `json:"createdBy,omitempty"`
}

// TrainingAssignment is the authoritative set of modules a trainee must
// complete. Re-assignment replaces the whole set.
type TrainingAssignment struct {
	Base
	TraineeEmail string         `gorm:"uniqueIndex;not null" json:"traineeEmail" validate:"required,email"`
	Modules      datatypes.JSON `gorm:"type:jsonb;not null" json:"modules" validate:"required"`
	AssignedBy   string         `json:"assignedBy,omitempty"`
}

type TrainingCompletion struct {
	Base
	TraineeEmail string     `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	Module       string     `gorm:"not null" json:"module" validate:"required"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	VerifiedBy   string     `json:"verifiedBy,omitempty"`
	// Certificate is an RS256-signed token attesting the completion.
	Certificate string `json:"certificate,omitempty"`
}

// TraineeVerification records a staff check that a trainee's submitted
// onboarding paperwork is complete and consistent.
type TraineeVerification struct {
	Base
	TraineeEmail string         `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	VerifiedBy   string         `gorm:"not null" json:"verifiedBy" validate:"required,email"`
	Notes        string         `json:"notes"`
	Checks       datatypes.JSON `gorm:"type:jsonb" json:"checks,omitempty"`
	Approved     bool           `json:"approved"`
}
