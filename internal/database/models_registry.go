package database

import "waypoint/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Destination{},
		&models.Article{},
		&models.Rating{},
		&models.Comment{},
		&models.Action{},
	}
}
