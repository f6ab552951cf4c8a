package services

import (
	"context"
	"fmt"
	"time"

	"trainhub/internal/events"
	"trainhub/internal/models"
	"trainhub/internal/utils/logger"

	"gorm.io/gorm"
)

// EquipmentService covers the stock-aware operations that the generic CRUD
// layer cannot express: availability accounting, request fulfilment and
// low-stock reporting.
type EquipmentService struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{
		db:     db,
		logger: logger.New("equipment_service"),
	}
}

// LowStock returns every equipment row whose available quantity has fallen
// below its configured threshold.
func (s *EquipmentService) LowStock(ctx context.Context) ([]models.Equipment, error) {
	var items []models.Equipment
	err := s.db.WithContext(ctx).
		Where("available_quantity < low_stock_threshold").
		Where("is_deleted = ?", false).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return nil, s.logger.Error("Failed to query low stock equipment ❌", err)
	}
	return items, nil
}

// CreateRequest persists an equipment request together with its items in a
// single transaction. Quantities are validated against current availability
// but stock is only decremented once the request is approved.
func (s *EquipmentService) CreateRequest(ctx context.Context, req *models.EquipmentRequest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(req.Items) == 0 {
			return fmt.Errorf("equipment request must contain at least one item")
		}

		for i := range req.Items {
			var equipment models.Equipment
			if err := tx.First(&equipment, "id = ? AND is_deleted = ?", req.Items[i].EquipmentID, false).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("equipment %s not found", req.Items[i].EquipmentID)
				}
				return err
			}
			if req.Items[i].Quantity <= 0 {
				return fmt.Errorf("quantity for %s must be positive", equipment.Name)
			}
			if req.Items[i].Quantity > equipment.AvailableQuantity {
				return fmt.Errorf("requested %d of %s but only %d available",
					req.Items[i].Quantity, equipment.Name, equipment.AvailableQuantity)
			}
		}

		req.Status = models.EquipmentRequestPending
		if err := tx.Create(req).Error; err != nil {
			return s.logger.Error("Failed to create equipment request ❌", err)
		}

		events.Emit("equipment_request.created", req)
		return nil
	})
}

// UpdateRequestStatus transitions an equipment request. Issuing a request
// decrements availability for every item; returning releases it again.
func (s *EquipmentService) UpdateRequestStatus(ctx context.Context, requestID string, status models.EquipmentRequestStatus, actorEmail string) (*models.EquipmentRequest, error) {
	var request models.EquipmentRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&request, "id = ?", requestID).Error; err != nil {
			return err
		}

		if !validRequestTransition(request.Status, status) {
			return fmt.Errorf("cannot move request from %s to %s", request.Status, status)
		}

		switch status {
		case models.EquipmentRequestIssued:
			if err := adjustStock(tx, request.Items, -1); err != nil {
				return err
			}
			if err := tx.Model(&models.EquipmentRequestItem{}).
				Where("request_id = ?", request.ID).
				Update("status", models.EquipmentItemIssued).Error; err != nil {
				return err
			}
		case models.EquipmentRequestReturned:
			if err := adjustStock(tx, request.Items, +1); err != nil {
				return err
			}
			if err := tx.Model(&models.EquipmentRequestItem{}).
				Where("request_id = ?", request.ID).
				Update("status", models.EquipmentItemReturned).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"status":      status,
			"reviewed_by": actorEmail,
			"updated_at":  time.Now(),
		}
		if err := tx.Model(&request).Updates(updates).Error; err != nil {
			return s.logger.Error("Failed to update equipment request ❌", err)
		}
		request.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit("equipment_request.updated", &request)
	return &request, nil
}

// Assign records equipment being handed to a trainee and decrements stock.
func (s *EquipmentService) Assign(ctx context.Context, assignment *models.EquipmentAssignment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var equipment models.Equipment
		if err := tx.First(&equipment, "id = ? AND is_deleted = ?", assignment.EquipmentID, false).Error; err != nil {
			return err
		}
		if assignment.Quantity <= 0 || assignment.Quantity > equipment.AvailableQuantity {
			return fmt.Errorf("cannot assign %d of %s, %d available",
				assignment.Quantity, equipment.Name, equipment.AvailableQuantity)
		}
		if err := tx.Model(&equipment).
			Update("available_quantity", gorm.Expr("available_quantity - ?", assignment.Quantity)).Error; err != nil {
			return err
		}
		if err := tx.Create(assignment).Error; err != nil {
			return s.logger.Error("Failed to create equipment assignment ❌", err)
		}
		return nil
	})
}

// Return closes an assignment and releases its quantity back into stock.
func (s *EquipmentService) Return(ctx context.Context, assignmentID string) (*models.EquipmentAssignment, error) {
	var assignment models.EquipmentAssignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, "id = ?", assignmentID).Error; err != nil {
			return err
		}
		if assignment.ReturnedAt != nil {
			return fmt.Errorf("assignment already returned")
		}
		now := time.Now()
		if err := tx.Model(&assignment).Update("returned_at", now).Error; err != nil {
			return err
		}
		assignment.ReturnedAt = &now
		return tx.Model(&models.Equipment{}).
			Where("id = ?", assignment.EquipmentID).
			Update("available_quantity", gorm.Expr("available_quantity + ?", assignment.Quantity)).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func adjustStock(tx *gorm.DB, items []models.EquipmentRequestItem, direction int) error {
	for _, item := range items {
		var equipment models.Equipment
		if err := tx.First(&equipment, "id = ?", item.EquipmentID).Error; err != nil {
			return err
		}
		delta := item.Quantity * direction
		if equipment.AvailableQuantity+delta < 0 {
			return fmt.Errorf("insufficient stock for %s", equipment.Name)
		}
		if err := tx.Model(&equipment).
			Update("available_quantity", gorm.Expr("available_quantity + ?", delta)).Error; err != nil {
			return err
		}
	}
	return nil
}

func validRequestTransition(from, to models.EquipmentRequestStatus) bool {
	switch from {
	case models.EquipmentRequestPending:
		return to == models.EquipmentRequestApproved || to == models.EquipmentRequestRejected
	case models.EquipmentRequestApproved:
		return to == models.EquipmentRequestIssued || to == models.EquipmentRequestRejected
	case models.EquipmentRequestIssued:
		return to == models.EquipmentRequestReturned
	default:
		return false
	}
}
