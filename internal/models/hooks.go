package models

import (
	"fmt"
	"time"

	"trainhub/internal/events"

	console "trainhub/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("MODELS")

func (p *Passcode) AfterCreate(tx *gorm.DB) error {
	log.Info("Passcode created for %s, expires %s", p.TraineeEmail, p.ExpiresAt.Format(time.RFC3339))
	events.Emit("passcode.created", p)
	return nil
}

func (r *RequestComplaint) AfterCreate(tx *gorm.DB) error {
	events.Emit("request_complaint.created", r)
	return nil
}

func (e *Equipment) AfterUpdate(tx *gorm.DB) error {
	if e.AvailableQuantity < e.LowStockThreshold {
		events.Emit("equipment.low_stock", e)
	}
	return nil
}

func (f *File) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil {
		// Generate URL with 1-hour expiry
		url, err := generator.GetSignedURL(tx.Statement.Context, f.Path, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		f.SignedURL = url
	}
	return nil
}
