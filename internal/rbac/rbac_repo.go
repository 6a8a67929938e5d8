package rbac

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error)
	GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error)
}

// EmployeeRoleRow becomes a casbin grouping g(employee, role, company).
type EmployeeRoleRow struct {
	EmployeeID string
	RoleID     string
}

// RolePermissionRow becomes a casbin policy p(role, company, resource, action).
type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const employeeRolesSQL = `
SELECT er.employee_id::text AS employee_id, er.role_id::text AS role_id
FROM employee_roles er
JOIN roles r ON r.id = er.role_id
WHERE r.company_id = ?
ORDER BY er.employee_id, er.role_id`

// Permissions are shared across companies; only the role binding is company scoped.
const rolePermissionsSQL = `
SELECT DISTINCT rp.role_id::text AS role_id, LOWER(p.resource) AS resource, LOWER(p.action) AS action
FROM role_permissions rp
JOIN roles r ON r.id = rp.role_id
JOIN permissions p ON p.id = rp.permission_id
WHERE r.company_id = ?
ORDER BY role_id, resource, action`

func (r *repository) GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error) {
	var rows []EmployeeRoleRow
	err := r.db.WithContext(ctx).Raw(employeeRolesSQL, companyID).Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.db.WithContext(ctx).Raw(rolePermissionsSQL, companyID).Scan(&rows).Error
	return rows, err
}
