package migrations

import "gorm.io/gorm"

type checkConstraint struct {
	table string
	name  string
	check string
}

var checkConstraints = []checkConstraint{
	{"schedules", "chk_schedules_duration", "duration_in_minutes > 0"},
	{"schedules", "chk_schedules_room_or_url", "room_id IS NOT NULL OR (url IS NOT NULL AND url <> '')"},
	{"activities", "chk_activities_vacancies", "vacancies IS NULL OR vacancies >= 0"},
	{"activity_registries", "chk_activity_registries_rating", "rating IS NULL OR rating BETWEEN 1 AND 5"},
	{"events", "chk_events_edition", "edition > 0"},
	{"events", "chk_events_dates", "registry_start_date <= registry_end_date AND registry_end_date <= start_date AND start_date <= end_date"},
	{"rooms", "chk_rooms_capacity", "capacity IS NULL OR capacity >= 0"},
}

// migration004Up adds the check constraints mirroring the domain validation
func migration004Up(db *gorm.DB) error {
	for _, c := range checkConstraints {
		if err := db.Exec("ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " CHECK (" + c.check + ")").Error; err != nil {
			return err
		}
	}
	return nil
}

// migration004Down drops the check constraints
func migration004Down(db *gorm.DB) error {
	for _, c := range checkConstraints {
		if err := db.Exec("ALTER TABLE " + c.table + " DROP CONSTRAINT IF EXISTS " + c.name).Error; err != nil {
			return err
		}
	}
	return nil
}
