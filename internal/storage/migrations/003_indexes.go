package migrations

import "gorm.io/gorm"

// migration003Up creates the lookup indexes the conflict detector and listings rely on
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		"CREATE INDEX IF NOT EXISTS idx_events_category ON events(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_events_dates ON events(start_date, end_date)",
		"CREATE INDEX IF NOT EXISTS idx_event_responsibles_user ON event_responsibles(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_activity_responsibles_user ON activity_responsibles(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_schedules_start ON schedules(start_date)",
		"CREATE INDEX IF NOT EXISTS idx_schedules_room_start ON schedules(room_id, start_date)",

		"CREATE INDEX IF NOT EXISTS idx_activity_registries_user ON activity_registries(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_activity_registries_ready ON activity_registries(activity_id) WHERE ready_for_certificate",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops the lookup indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_users_role",
		"idx_events_category",
		"idx_events_dates",
		"idx_event_responsibles_user",
		"idx_activity_responsibles_user",
		"idx_schedules_start",
		"idx_schedules_room_start",
		"idx_activity_registries_user",
		"idx_activity_registries_ready",
	}

	for _, index := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + index).Error; err != nil {
			return err
		}
	}

	return nil
}
