package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `gorm:"index;default:NULL" json:"-" validate:"omitempty"`
	IsDeleted bool      `json:"isDeleted" default:"false"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// RequestStatus tracks a request/complaint through its lifecycle.
type RequestStatus string

const (
	RequestStatusOpen     RequestStatus = "OPEN"
	RequestStatusInReview RequestStatus = "IN_REVIEW"
	RequestStatusResolved RequestStatus = "RESOLVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

type EquipmentRequestStatus string

const (
	EquipmentRequestPending  EquipmentRequestStatus = "PENDING"
	EquipmentRequestApproved EquipmentRequestStatus = "APPROVED"
	EquipmentRequestIssued   EquipmentRequestStatus = "ISSUED"
	EquipmentRequestRejected EquipmentRequestStatus = "REJECTED"
	EquipmentRequestReturned EquipmentRequestStatus = "RETURNED"
)

type EquipmentItemStatus string

const (
	EquipmentItemPending  EquipmentItemStatus = "PENDING"
	EquipmentItemIssued   EquipmentItemStatus = "ISSUED"
	EquipmentItemRejected EquipmentItemStatus = "REJECTED"
	EquipmentItemReturned EquipmentItemStatus = "RETURNED"
)

type MaintenanceType string

const (
	MaintenanceInspection  MaintenanceType = "INSPECTION"
	MaintenanceRepair      MaintenanceType = "REPAIR"
	MaintenanceReplacement MaintenanceType = "REPLACEMENT"
)

// AllRequestStatuses is used by the validator for the request_status tag.
var AllRequestStatuses = []RequestStatus{
	RequestStatusOpen, RequestStatusInReview, RequestStatusResolved, RequestStatusRejected,
}

// Module codes for assignable training modules. Presence of a code in a
// trainee's assignment set drives the dynamic onboarding steps.
const (
	ModuleBOSIET    = "BOSIET"
	ModuleFireWatch = "FIRE_WATCH"
	ModuleCSER      = "CSER"
)
