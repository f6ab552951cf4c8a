// Package passcode owns the trainee login credential lifecycle: staff
// issue short-lived single-use codes, trainees consume them exactly once.
// Validation here is the single authoritative path; there is no secondary
// client-side check.
package passcode

import (
	"context"
	"errors"
	"strings"
	"time"

	"trainhub/internal/config"
	"trainhub/internal/models"
	"trainhub/internal/utils"
	"trainhub/internal/utils/logger"

	"gorm.io/gorm"
)

// Rejection reasons, surfaced to the caller with distinct messages.
var (
	ErrInvalid     = errors.New("invalid passcode")
	ErrAlreadyUsed = errors.New("passcode already used")
	ErrExpired     = errors.New("passcode expired")
	ErrRateLimited = errors.New("too many passcodes issued for this email")
)

// IssuanceLimiter caps how often codes may be generated per identifier.
type IssuanceLimiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

type Service struct {
	db      *gorm.DB
	cfg     config.PasscodeConfig
	limiter IssuanceLimiter
	log     *logger.Logger
}

func NewService(db *gorm.DB, cfg config.PasscodeConfig, limiter IssuanceLimiter) *Service {
	return &Service{
		db:      db,
		cfg:     cfg,
		limiter: limiter,
		log:     logger.New("passcode_service"),
	}
}

// Generate issues a new single-use numeric code for a trainee email.
func (s *Service) Generate(ctx context.Context, traineeEmail, issuedByID string) (*models.Passcode, error) {
	email := strings.ToLower(strings.TrimSpace(traineeEmail))

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn("issuance limiter unavailable, allowing: %v", err)
		} else if !allowed {
			return nil, ErrRateLimited
		}
	}

	code, err := utils.GenerateNumericCode(s.cfg.CodeLength)
	if err != nil {
		return nil, s.log.Error("failed to generate code", err)
	}

	record := &models.Passcode{
		TraineeEmail: email,
		Code:         code,
		IssuedByID:   issuedByID,
		ExpiresAt:    expiryFrom(time.Now(), s.cfg.ExpiryHours),
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, s.log.Error("failed to store passcode", err)
	}

	s.log.Success("Issued passcode for %s", email)
	return record, nil
}

// Validate looks up the code for an email and consumes it. Rejections are
// checked in order: no match, already used, expired.
func (s *Service) Validate(ctx context.Context, email, code string) (*models.Passcode, error) {
	var record models.Passcode
	err := s.db.WithContext(ctx).
		Where("LOWER(trainee_email) = ? AND code = ?", strings.ToLower(strings.TrimSpace(email)), code).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalid
		}
		return nil, s.log.Error("passcode lookup failed", err)
	}

	if err := evaluate(&record, time.Now()); err != nil {
		return nil, err
	}

	now := time.Now()
	record.IsUsed = true
	record.UsedAt = &now
	if err := s.db.WithContext(ctx).Model(&record).
		Updates(map[string]interface{}{"is_used": true, "used_at": now}).Error; err != nil {
		return nil, s.log.Error("failed to mark passcode used", err)
	}

	return &record, nil
}

// evaluate applies the rejection order: a used code is reported as used
// even when it is also expired.
func evaluate(p *models.Passcode, now time.Time) error {
	if p == nil {
		return ErrInvalid
	}
	if p.IsUsed {
		return ErrAlreadyUsed
	}
	if p.ExpiresAt.Before(now) {
		return ErrExpired
	}
	return nil
}

func expiryFrom(createdAt time.Time, hours int) time.Time {
	if hours <= 0 {
		hours = 24
	}
	return createdAt.Add(time.Duration(hours) * time.Hour)
}

// SweepExpired counts unused codes that have lapsed. Records are kept as
// history; the periodic task uses the count for visibility.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Passcode{}).
		Where("is_used = false AND expires_at < ?", time.Now()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
