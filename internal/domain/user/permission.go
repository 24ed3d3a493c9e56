package user

type Permission string

const (
	// Staff directory. Deletes are admin only and not a permission.
	PermissionStaffView   Permission = "staff.view"
	PermissionStaffManage Permission = "staff.manage"

	// Attendance
	PermissionAttendanceMark Permission = "attendance.mark"
	PermissionAttendanceView Permission = "attendance.view"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionStaffView,
		PermissionStaffManage,
		PermissionAttendanceMark,
		PermissionAttendanceView,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleStaff: {
		PermissionStaffView,
		PermissionStaffManage,
		PermissionAttendanceMark,
		PermissionAttendanceView,
		PermissionReportsView,
		PermissionReportsExport,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
