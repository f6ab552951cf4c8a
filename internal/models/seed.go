package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"trainhub/internal/rbac"

	"gorm.io/gorm"
)

// CreateSuperAdminFromEnv creates the super-admin account on first boot.
// Role permissions themselves are static (see internal/rbac) and need no
// seeding.
func CreateSuperAdminFromEnv(db *gorm.DB) error {
	role := rbac.RoleSuperAdmin

	// check if super admin already exists
	var count int64
	db.Model(&User{}).Where("role = ?", role).Count(&count)
	if count > 0 {
		return nil
	}

	email, ok := os.LookupEnv("SUPERADMIN_EMAIL")
	if !ok {
		return fmt.Errorf("SUPERADMIN_EMAIL not set")
	}

	password, ok := os.LookupEnv("SUPERADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("SUPERADMIN_PASSWORD not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	name, ok := os.LookupEnv("SUPERADMIN_NAME")
	if !ok {
		return fmt.Errorf("SUPERADMIN_NAME not set")
	}

	user := User{
		FirstName: name,
		LastName:  "",
		Email:     email,
		Role:      role,
		Password:  string(hashedPassword),
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create superadmin user: %v", err)
	}

	return nil
}
