package models

import (
	"time"

	"gorm.io/datatypes"
)

// Every onboarding form keys on the trainee's email; there is no
// cross-form referential integrity beyond that.

type WelcomePolicyForm struct {
	Base
	TraineeEmail    string `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName        string `gorm:"not null" json:"fullName" validate:"required,min=2"`
	PolicyVersion   string `json:"policyVersion"`
	Acknowledged    bool   `gorm:"not null" json:"acknowledged" validate:"required"`
	SignatureFileID string `gorm:"type:uuid;default:NULL" json:"signatureFileId,omitempty" validate:"omitempty,uuid"`
	SignatureFile   *File  `json:"signatureFile,omitempty"`
}

type CourseRegistrationForm struct {
	Base
	TraineeEmail   string     `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName       string     `gorm:"not null" json:"fullName" validate:"required,min=2"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Nationality    string     `json:"nationality"`
	Company        string     `json:"company"`
	JobTitle       string     `json:"jobTitle"`
	CourseName     string     `gorm:"not null" json:"courseName" validate:"required"`
	CourseDate     *time.Time `json:"courseDate,omitempty"`
	EmergencyName  string     `json:"emergencyName"`
	EmergencyPhone string     `json:"emergencyPhone"`
}

// MedicalScreeningForm holds the screening questionnaire. Answers is a
// free-form question->answer map so the questionnaire can evolve without
// schema churn. Access is gated by the view_medical_data permission.
type MedicalScreeningForm struct {
	Base
	TraineeEmail    string         `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName        string         `gorm:"not null" json:"fullName" validate:"required,min=2"`
	BloodType       string         `json:"bloodType"`
	Allergies       string         `json:"allergies"`
	Medications     string         `json:"medications"`
	Answers         datatypes.JSON `gorm:"type:jsonb" json:"answers,omitempty"`
	FitForTraining  bool           `json:"fitForTraining"`
	NurseEmail      string         `json:"nurseEmail,omitempty" validate:"omitempty,email"`
	SignatureFileID string         `gorm:"type:uuid;default:NULL" json:"signatureFileId,omitempty" validate:"omitempty,uuid"`
	SignatureFile   *File          `json:"signatureFile,omitempty"`
}

type BosietForm struct {
	Base
	TraineeEmail    string         `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName        string         `gorm:"not null" json:"fullName" validate:"required,min=2"`
	CertificateNo   string         `json:"certificateNo"`
	Provider        string         `json:"provider"`
	IssuedAt        *time.Time     `json:"issuedAt,omitempty"`
	ExpiresAt       *time.Time     `json:"expiresAt,omitempty"`
	Details         datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	SignatureFileID string         `gorm:"type:uuid;default:NULL" json:"signatureFileId,omitempty" validate:"omitempty,uuid"`
}

type FireWatchForm struct {
	Base
	TraineeEmail    string         `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName        string         `gorm:"not null" json:"fullName" validate:"required,min=2"`
	Site            string         `json:"site"`
	ShiftPattern    string         `json:"shiftPattern"`
	Details         datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	SignatureFileID string         `gorm:"type:uuid;default:NULL" json:"signatureFileId,omitempty" validate:"omitempty,uuid"`
}

// CSERForm covers confined space entry and rescue acknowledgment.
type CSERForm struct {
	Base
	TraineeEmail    string         `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName        string         `gorm:"not null" json:"fullName" validate:"required,min=2"`
	Details         datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	SignatureFileID string         `gorm:"type:uuid;default:NULL" json:"signatureFileId,omitempty" validate:"omitempty,uuid"`
}

// SizeForm captures PPE sizing for a trainee.
type SizeForm struct {
	Base
	TraineeEmail string `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	FullName     string `gorm:"not null" json:"fullName" validate:"required,min=2"`
	CoverallSize string `json:"coverallSize"`
	BootSize     string `json:"bootSize"`
	GloveSize    string `json:"gloveSize"`
	HelmetSize   string `json:"helmetSize"`
}

// UseeUactReport is a "you see, you act" safety observation report.
type UseeUactReport struct {
	Base
	ReporterEmail string     `gorm:"index;not null" json:"reporterEmail" validate:"required,email"`
	Location      string     `gorm:"not null" json:"location" validate:"required"`
	ObservedAt    *time.Time `json:"observedAt,omitempty"`
	Observation   string     `gorm:"not null" json:"observation" validate:"required,min=5"`
	ActionTaken   string     `json:"actionTaken"`
	IsUnsafe      bool       `json:"isUnsafe"`
}

// RequestComplaint is a trainee-raised request or complaint reviewed by
// staff holding manage_requests.
type RequestComplaint struct {
	Base
	TraineeEmail string        `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	Category     string        `gorm:"not null" json:"category" validate:"required"`
	Subject      string        `gorm:"not null" json:"subject" validate:"required,min=3"`
	Details      string        `json:"details"`
	Status       RequestStatus `gorm:"not null;default:'OPEN'" json:"status" validate:"omitempty,request_status"`
	ResolvedAt   *time.Time    `json:"resolvedAt,omitempty"`
	ResolvedBy   string        `json:"resolvedBy,omitempty"`
}

// File is an uploaded attachment, typically a signature image.
type File struct {
	Base
	Path       string `gorm:"not null" json:"path" validate:"required"`
	Name       string `gorm:"not null" json:"name" validate:"required"`
	OwnerEmail string `gorm:"index" json:"ownerEmail,omitempty" validate:"omitempty,email"`
	Size       int64  `gorm:"not null" json:"size" validate:"required,min=1"`
	Type       string `gorm:"not null" json:"type" validate:"required"`
	SignedURL  string `gorm:"-" json:"signedUrl,omitempty"` // Virtual field
}
