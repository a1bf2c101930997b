package database

import "gorm.io/gorm"

// NewestFirst orders by creation time descending, the default collection
// order for projects and tasks.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// ByNameAsc orders by name ascending, the default collection order for users.
func ByNameAsc(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
