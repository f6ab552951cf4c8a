package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"trainhub/internal/rbac"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Register custom validation tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	err := v.RegisterValidation("user_role", validateUserRole)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("request_status", validateRequestStatus)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("equipment_status", validateEquipmentStatus)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("passcode", validatePasscode)
	if err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateUserRole(fl playgroundvalidator.FieldLevel) bool {
	return rbac.IsValidRole(rbac.Role(fl.Field().String()))
}

func validateRequestStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "OPEN" || status == "IN_REVIEW" || status == "RESOLVED" || status == "REJECTED"
}

func validateEquipmentStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "PENDING" || status == "APPROVED" || status == "ISSUED" ||
		status == "REJECTED" || status == "RETURNED"
}

// validatePasscode accepts digit-only codes.
func validatePasscode(fl playgroundvalidator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) == 0 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// PasscodeIssueRequest Request validation structs shared by handlers
type PasscodeIssueRequest struct {
	TraineeEmail string `json:"traineeEmail" validate:"required,email"`
}

type TraineeLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,passcode"`
}

type AssignModulesRequest struct {
	TraineeEmail string   `json:"traineeEmail" validate:"required,email"`
	Modules      []string `json:"modules" validate:"required,dive,min=1"`
}

type RequestStatusUpdate struct {
	Status string `json:"status" validate:"required,request_status"`
}

type EquipmentStatusUpdate struct {
	Status string `json:"status" validate:"required,equipment_status"`
}
