package rbac

import (
	"reflect"
	"testing"
)

func TestIsValidRole(t *testing.T) {
	for _, r := range []Role{
		RoleTrainee, RoleTrainingSupervisor, RoleTrainingCoordinator,
		RoleSafetyCoordinator, RoleNurse, RoleChiefOperationsOfficer,
		RoleOperationsManager, RoleExecutive, RoleDeskOfficer, RoleSuperAdmin,
	} {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%s) = false, want true", r)
		}
	}
	for _, r := range []Role{"", "ADMIN", "trainee", "GUEST"} {
		if IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = true, want false", r)
		}
	}
}

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSuperAdmin, PermViewMedicalData, true},
		{RoleSuperAdmin, PermManageEquipment, true},
		{RoleTrainingCoordinator, PermManagePasscodes, true},
		{RoleTrainingCoordinator, PermViewMedicalData, false},
		{RoleTrainingSupervisor, PermManageTraining, true},
		{RoleTrainingSupervisor, PermManagePasscodes, false},
		{RoleNurse, PermViewMedicalData, true},
		{RoleNurse, PermViewReports, false},
		{RoleSafetyCoordinator, PermCreateSafetyForms, true},
		{RoleSafetyCoordinator, PermViewUseeUact, true},
		{RoleOperationsManager, PermManageEquipment, true},
		{RoleDeskOfficer, PermSubmitUseeUact, true},
		{RoleDeskOfficer, PermAdminAccess, false},
		{RoleExecutive, PermViewReports, true},
		{RoleTrainee, PermSubmitUseeUact, true},
		{RoleTrainee, PermManageTrainees, false},
	}
	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestSuperAdminHasEverything(t *testing.T) {
	if !HasAllPermissions(RoleSuperAdmin, AllPermissions) {
		t.Error("super admin should hold every permission")
	}
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	if perms := PermissionsFor("NOPE"); len(perms) != 0 {
		t.Errorf("unknown role granted %v", perms)
	}
	if HasAnyPermission("NOPE", AllPermissions) {
		t.Error("unknown role passed HasAnyPermission")
	}
}

// An empty requirement list admits every role under HasAllPermissions but
// never satisfies HasAnyPermission.
func TestEmptyListConvention(t *testing.T) {
	for _, r := range []Role{RoleTrainee, RoleSuperAdmin, Role("UNKNOWN")} {
		if !HasAllPermissions(r, nil) {
			t.Errorf("HasAllPermissions(%s, nil) = false, want true", r)
		}
		if HasAnyPermission(r, nil) {
			t.Errorf("HasAnyPermission(%s, nil) = true, want false", r)
		}
		if !HasAllPermissions(r, []Permission{}) {
			t.Errorf("HasAllPermissions(%s, empty) = false, want true", r)
		}
		if HasAnyPermission(r, []Permission{}) {
			t.Errorf("HasAnyPermission(%s, empty) = true, want false", r)
		}
	}
}

func TestPermissionsForIsDeterministic(t *testing.T) {
	first := PermissionsFor(RoleTrainingCoordinator)
	for i := 0; i < 5; i++ {
		if got := PermissionsFor(RoleTrainingCoordinator); !reflect.DeepEqual(got, first) {
			t.Fatalf("permission order changed between calls: %v vs %v", got, first)
		}
	}
}
