package services

import (
	"testing"

	"trainhub/internal/models"
)

func TestValidRequestTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.EquipmentRequestStatus
		to   models.EquipmentRequestStatus
		want bool
	}{
		{"pending to approved", models.EquipmentRequestPending, models.EquipmentRequestApproved, true},
		{"pending to rejected", models.EquipmentRequestPending, models.EquipmentRequestRejected, true},
		{"pending to issued", models.EquipmentRequestPending, models.EquipmentRequestIssued, false},
		{"pending to returned", models.EquipmentRequestPending, models.EquipmentRequestReturned, false},
		{"approved to issued", models.EquipmentRequestApproved, models.EquipmentRequestIssued, true},
		{"approved to rejected", models.EquipmentRequestApproved, models.EquipmentRequestRejected, true},
		{"approved to returned", models.EquipmentRequestApproved, models.EquipmentRequestReturned, false},
		{"issued to returned", models.EquipmentRequestIssued, models.EquipmentRequestReturned, true},
		{"issued to pending", models.EquipmentRequestIssued, models.EquipmentRequestPending, false},
		{"rejected is terminal", models.EquipmentRequestRejected, models.EquipmentRequestPending, false},
		{"returned is terminal", models.EquipmentRequestReturned, models.EquipmentRequestIssued, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validRequestTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("validRequestTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
