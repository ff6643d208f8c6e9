package repositories

import (
	"database/sql"

	intdb "transportease/internal/db"
)

// EnsureSchema creates the tables this service owns when they are missing.
// Safe to call on every start.
func EnsureSchema(db *sql.DB) error {
	ddls := map[string]string{
		"users": `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'user',
	status VARCHAR(50) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email),
	UNIQUE KEY uniq_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
		"transport_options": `
CREATE TABLE IF NOT EXISTS transport_options (
	trip_id BIGINT AUTO_INCREMENT PRIMARY KEY,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	duration VARCHAR(50) NOT NULL DEFAULT '',
	boarding_point VARCHAR(255) NOT NULL,
	dropping_point VARCHAR(255) NOT NULL,
	service_type VARCHAR(20) NOT NULL,
	fare BIGINT NOT NULL,
	seats_left INT NOT NULL DEFAULT 0,
	cancellation_policy VARCHAR(100) NOT NULL DEFAULT '',
	KEY idx_points (boarding_point, dropping_point),
	KEY idx_departure (departure_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
		"bookings": `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	ref VARCHAR(40) NOT NULL,
	user_id BIGINT NOT NULL,
	trip_id BIGINT NOT NULL,
	selected_seats TEXT NOT NULL,
	total_amount BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'unpaid',
	boarding_point VARCHAR(255) NOT NULL DEFAULT '',
	dropping_point VARCHAR(255) NOT NULL DEFAULT '',
	passenger_count INT NOT NULL DEFAULT 1,
	luggage_count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_ref (ref),
	KEY idx_user (user_id),
	KEY idx_trip (trip_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	}

	for table, ddl := range ddls {
		if intdb.HasTable(db, table) {
			continue
		}
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}

	// Bookings tables predating the luggage fee lack this column.
	if !intdb.HasColumn(db, "bookings", "luggage_count") {
		if _, err := db.Exec(`ALTER TABLE bookings ADD COLUMN luggage_count INT NOT NULL DEFAULT 0`); err != nil {
			return err
		}
	}
	return nil
}
