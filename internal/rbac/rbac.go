// Package rbac defines the closed set of roles and the static mapping from
// roles to permissions. The mapping is compiled in: there is no runtime
// administration of roles or permission grants.
package rbac

// Role identifies one of the fixed user roles.
type Role string

const (
	RoleTrainee                Role = "TRAINEE"
	RoleTrainingSupervisor     Role = "TRAINING_SUPERVISOR"
	RoleTrainingCoordinator    Role = "TRAINING_COORDINATOR"
	RoleSafetyCoordinator      Role = "SAFETY_COORDINATOR"
	RoleNurse                  Role = "NURSE"
	RoleChiefOperationsOfficer Role = "CHIEF_OPERATIONS_OFFICER"
	RoleOperationsManager      Role = "OPERATIONS_MANAGER"
	RoleExecutive              Role = "EXECUTIVE"
	RoleDeskOfficer            Role = "DESK_OFFICER"
	RoleSuperAdmin             Role = "SUPER_ADMIN"
)

// Permission names a single capability a route or handler may require.
type Permission string

const (
	PermManageTrainees    Permission = "manage_trainees"
	PermViewMedicalData   Permission = "view_medical_data"
	PermAdminAccess       Permission = "admin_access"
	PermManageRequests    Permission = "manage_requests"
	PermCreateSafetyForms Permission = "create_safety_forms"
	PermViewReports       Permission = "view_reports"
	PermManageUsers       Permission = "manage_users"
	PermManagePasscodes   Permission = "manage_passcodes"
	PermViewUseeUact      Permission = "view_usee_uact"
	PermSubmitUseeUact    Permission = "submit_usee_uact"
	PermManageEquipment   Permission = "manage_equipment"
	PermManageTraining    Permission = "manage_training"
)

// AllPermissions lists every defined permission, in declaration order.
var AllPermissions = []Permission{
	PermManageTrainees,
	PermViewMedicalData,
	PermAdminAccess,
	PermManageRequests,
	PermCreateSafetyForms,
	PermViewReports,
	PermManageUsers,
	PermManagePasscodes,
	PermViewUseeUact,
	PermSubmitUseeUact,
	PermManageEquipment,
	PermManageTraining,
}

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: AllPermissions,
	RoleTrainingCoordinator: {
		PermManageTrainees,
		PermManagePasscodes,
		PermManageTraining,
		PermManageRequests,
		PermViewReports,
	},
	RoleTrainingSupervisor: {
		PermManageTrainees,
		PermManageTraining,
		PermViewReports,
	},
	RoleSafetyCoordinator: {
		PermCreateSafetyForms,
		PermViewUseeUact,
		PermViewReports,
	},
	RoleNurse: {
		PermViewMedicalData,
	},
	RoleChiefOperationsOfficer: {
		PermAdminAccess,
		PermManageUsers,
		PermViewReports,
	},
	RoleOperationsManager: {
		PermManageEquipment,
		PermManageRequests,
		PermViewReports,
	},
	RoleExecutive: {
		PermViewReports,
	},
	RoleDeskOfficer: {
		PermManageRequests,
		PermSubmitUseeUact,
	},
	RoleTrainee: {
		PermSubmitUseeUact,
	},
}

// IsValidRole reports whether r is one of the defined roles.
func IsValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}

// PermissionsFor returns the permissions granted to a role. Unknown roles
// get an empty set. The returned slice must not be mutated by callers.
func PermissionsFor(r Role) []Permission {
	return rolePermissions[r]
}

// HasPermission reports whether the role is granted a single permission.
func HasPermission(r Role, p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the role holds at least one of the given
// permissions. An empty required list means "no listed permission can
// match", so it always returns false.
func HasAnyPermission(r Role, required []Permission) bool {
	for _, p := range required {
		if HasPermission(r, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role holds every given permission.
// An empty required list is vacuously satisfied and returns true.
func HasAllPermissions(r Role, required []Permission) bool {
	for _, p := range required {
		if !HasPermission(r, p) {
			return false
		}
	}
	return true
}
