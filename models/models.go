package models

// All lists the tables managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Hotel{},
		&Booking{},
		&Payment{},
		&Rating{},
	}
}
