// Package tenant scopes queries to one company. Every table this service owns carries a
// company_id column.
package tenant

import "gorm.io/gorm"

// Scope restricts the model's table to companyID.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return ScopeAs("", companyID)
}

// ScopeAs qualifies company_id with a table alias, for joins where the column is ambiguous.
func ScopeAs(alias, companyID string) func(db *gorm.DB) *gorm.DB {
	column := "company_id"
	if alias != "" {
		column = alias + ".company_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", companyID)
	}
}
