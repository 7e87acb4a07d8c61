package migrations

import "gorm.io/gorm"

// migration001Up creates the uuid extension and the enum types used by the models
func migration001Up(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	types := []string{
		`CREATE TYPE user_role AS ENUM ('admin', 'participant')`,
		`CREATE TYPE edition_display AS ENUM ('ARABIC', 'ORDINAL', 'ROMAN')`,
		`CREATE TYPE event_display AS ENUM ('SHOW_ALL', 'SHOW_EDITION_ONLY', 'SHOW_YEAR_ONLY', 'SHOW_NONE')`,
	}
	for _, typeSQL := range types {
		if err := db.Exec(typeSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration001Down drops the enum types
func migration001Down(db *gorm.DB) error {
	for _, name := range []string{"event_display", "edition_display", "user_role"} {
		if err := db.Exec("DROP TYPE IF EXISTS " + name + " CASCADE").Error; err != nil {
			return err
		}
	}

	// NOTE: uuid-ossp stays, other schemas on the server may rely on it
	return nil
}
