package database

import (
	"github.com/drivehive/drivehive-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Driver{},
		&models.Partner{},
		&models.Car{},
		&models.Booking{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	// Query-path indexes on bookings
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_customer_id ON bookings (customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_car_id ON bookings (car_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_start_date ON bookings (start_date)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	// Storage-level guard against double booking: two live bookings for the
	// same car may never hold intersecting rental intervals, even when two
	// requests pass the application-level check concurrently.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	db.Exec("ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_car_no_overlap")
	if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_car_no_overlap
		EXCLUDE USING gist (car_id WITH =, tsrange(start_date, end_date, '[]') WITH &&)
		WHERE (status <> 'cancelled' AND deleted_at IS NULL)`).Error; err != nil {
		return err
	}

	// Status columns carry check constraints matching the API enums
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_payment_status_check`)
	db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_payment_status_check CHECK (payment_status IN ('pending', 'completed', 'refunded'))`)
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
	db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'ongoing', 'booked', 'completed', 'cancelled'))`)
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_partner_status_check`)
	db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_partner_status_check CHECK (partner_status IN ('pending', 'confirmed', 'rejected'))`)
	db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_driver_status_check`)
	db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_driver_status_check CHECK (driver_status IN ('pending', 'accepted', 'rejected'))`)

	db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
	db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('customer', 'driver', 'partner', 'user'))`)

	return nil
}
