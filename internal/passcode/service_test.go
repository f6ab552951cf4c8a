package passcode

import (
	"testing"
	"time"

	"trainhub/internal/models"
)

func TestEvaluateFresh(t *testing.T) {
	now := time.Now()
	p := &models.Passcode{
		TraineeEmail: "a@b.com",
		Code:         "123456",
		ExpiresAt:    now.Add(24 * time.Hour),
	}
	if err := evaluate(p, now); err != nil {
		t.Fatalf("fresh code rejected: %v", err)
	}
}

func TestEvaluateUsed(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Hour)
	p := &models.Passcode{
		Code:      "123456",
		ExpiresAt: now.Add(24 * time.Hour),
		IsUsed:    true,
		UsedAt:    &used,
	}
	if err := evaluate(p, now); err != ErrAlreadyUsed {
		t.Fatalf("err = %v, want ErrAlreadyUsed", err)
	}
}

func TestEvaluateExpired(t *testing.T) {
	now := time.Now()
	p := &models.Passcode{
		Code:      "123456",
		ExpiresAt: now.Add(-time.Minute),
	}
	if err := evaluate(p, now); err != ErrExpired {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
}

// A code that is both used and expired reports "already used"; the checks
// run in a fixed order.
func TestEvaluateUsedBeatsExpired(t *testing.T) {
	now := time.Now()
	p := &models.Passcode{
		Code:      "123456",
		ExpiresAt: now.Add(-time.Hour),
		IsUsed:    true,
	}
	if err := evaluate(p, now); err != ErrAlreadyUsed {
		t.Fatalf("err = %v, want ErrAlreadyUsed", err)
	}
}

func TestEvaluateNil(t *testing.T) {
	if err := evaluate(nil, time.Now()); err != ErrInvalid {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestExpiryFrom(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	got := expiryFrom(created, 24)
	want := created.Add(24 * time.Hour)
	if diff := got.Sub(want); diff > time.Second || diff < -time.Second {
		t.Fatalf("expiry = %v, want %v", got, want)
	}

	// Non-positive config falls back to 24h.
	if got := expiryFrom(created, 0); !got.Equal(created.Add(24 * time.Hour)) {
		t.Fatalf("zero-hours expiry = %v, want +24h default", got)
	}
}
