package models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetUserByEmail retrieves a user from the database by email
func GetUserByEmail(email string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("LOWER(email) = ? AND is_deleted = false", strings.ToLower(email)).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetFileByID(id string, db *gorm.DB) (*File, error) {
	file := &File{}
	if err := db.Where("id = ? AND is_deleted = false", id).First(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

// ModulesFromJSON decodes a jsonb module list column into a string slice.
func ModulesFromJSON(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var modules []string
	if err := json.Unmarshal(data, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// ModulesToJSON encodes a module list for storage in a jsonb column.
func ModulesToJSON(modules []string) (datatypes.JSON, error) {
	data, err := json.Marshal(modules)
	if err != nil {
		return nil, err
	}
	return data, nil
}
