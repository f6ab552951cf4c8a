package tasks

import (
	"context"

	"trainhub/internal/events"
	"trainhub/internal/passcode"
	"trainhub/internal/services"
	"trainhub/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// TaskHandler handles task processing with improved error handling and logging
type TaskHandler struct {
	db        *gorm.DB
	logger    *logger.Logger
	passcodes *passcode.Service
	equipment *services.EquipmentService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB, passcodes *passcode.Service) *TaskHandler {
	return &TaskHandler{
		db:        db,
		logger:    logger.New("task_handler"),
		passcodes: passcodes,
		equipment: services.NewEquipmentService(db),
	}
}

// HandlePasscodeSweep reports lapsed unused passcodes. Codes stay in the
// table as history; validation rejects them regardless.
func (h *TaskHandler) HandlePasscodeSweep(ctx context.Context, t *asynq.Task) error {
	count, err := h.passcodes.SweepExpired(ctx)
	if err != nil {
		return h.logger.Error("passcode sweep failed", err)
	}

	if count > 0 {
		h.logger.Warn("%d unused passcodes have expired", count)
	} else {
		h.logger.Info("no expired passcodes outstanding")
	}
	return nil
}

// HandleLowStockCheck flags equipment below its threshold so supervisors
// can restock before assignments start failing.
func (h *TaskHandler) HandleLowStockCheck(ctx context.Context, t *asynq.Task) error {
	items, err := h.equipment.LowStock(ctx)
	if err != nil {
		return h.logger.Error("low stock check failed", err)
	}

	for i := range items {
		h.logger.Warn("equipment %s low on stock: %d available (threshold %d)",
			items[i].Name, items[i].AvailableQuantity, items[i].LowStockThreshold)
		events.Emit("equipment.low_stock", &items[i])
	}
	return nil
}
