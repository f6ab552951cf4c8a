package models

import "time"

type Equipment struct {
	Base
	Name              string `gorm:"not null" json:"name" validate:"required,min=2"`
	Category          string `gorm:"index" json:"category"`
	SerialPrefix      string `json:"serialPrefix"`
	Location          string `json:"location"`
	TotalQuantity     int    `gorm:"not null" json:"totalQuantity" validate:"min=0"`
	AvailableQuantity int    `gorm:"not null" json:"availableQuantity" validate:"min=0"`
	LowStockThreshold int    `gorm:"not null;default:5" json:"lowStockThreshold" validate:"min=0"`
	Condition         string `json:"condition"`
}

type EquipmentRequest struct {
	Base
	RequesterEmail string                 `gorm:"index;not null" json:"requesterEmail" validate:"required,email"`
	Purpose        string                 `json:"purpose"`
	NeededBy       *time.Time             `json:"neededBy,omitempty"`
	Status         EquipmentRequestStatus `gorm:"not null;default:'PENDING'" json:"status" validate:"omitempty,equipment_status"`
	ReviewedBy     string                 `json:"reviewedBy,omitempty"`
	Items          []EquipmentRequestItem `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"items,omitempty" validate:"omitempty,dive"`
}

type EquipmentRequestItem struct {
	Base
	RequestID   string              `gorm:"type:uuid;not null" json:"requestId"`
	EquipmentID string              `gorm:"type:uuid;not null" json:"equipmentId" validate:"required,uuid"`
	Equipment   *Equipment          `json:"equipment,omitempty"`
	Quantity    int                 `gorm:"not null" json:"quantity" validate:"required,min=1"`
	Status      EquipmentItemStatus `gorm:"not null;default:'PENDING'" json:"status"`
}

type EquipmentAssignment struct {
	Base
	EquipmentID   string     `gorm:"type:uuid;not null" json:"equipmentId" validate:"required,uuid"`
	Equipment     *Equipment `json:"equipment,omitempty"`
	AssigneeEmail string     `gorm:"index;not null" json:"assigneeEmail" validate:"required,email"`
	Quantity      int        `gorm:"not null;default:1" json:"quantity" validate:"min=1"`
	AssignedBy    string     `json:"assignedBy,omitempty"`
	DueBack       *time.Time `json:"dueBack,omitempty"`
	ReturnedAt    *time.Time `json:"returnedAt,omitempty"`
}

type MaintenanceRecord struct {
	Base
	EquipmentID string          `gorm:"type:uuid;not null" json:"equipmentId" validate:"required,uuid"`
	Equipment   *Equipment      `json:"equipment,omitempty"`
	Type        MaintenanceType `gorm:"not null" json:"type" validate:"required"`
	PerformedBy string          `json:"performedBy"`
	PerformedAt *time.Time      `json:"performedAt,omitempty"`
	Notes       string          `json:"notes"`
	Cost        float64         `json:"cost"`
}
