package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables the service needs.  Statements are idempotent
// so repeated startups are harmless.  There is no migration tooling; a
// schema change means editing these statements and recreating the
// affected tables by hand.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS flights (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		airport_from       VARCHAR(64)  NOT NULL,
		airport_to         VARCHAR(64)  NOT NULL,
		date_from          VARCHAR(32)  NOT NULL,
		date_to            VARCHAR(32)  NOT NULL,
		duration           INT          NOT NULL,
		total_capacity     INT          NOT NULL,
		remaining_capacity INT          NOT NULL,
		created_at         DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		ticket_number  VARCHAR(16)  NOT NULL DEFAULT '',
		flight_id      BIGINT UNSIGNED NOT NULL,
		passenger_name VARCHAR(100) NOT NULL,
		created_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_tickets_flight_passenger (flight_id, passenger_name),
		CONSTRAINT fk_tickets_flight FOREIGN KEY (flight_id) REFERENCES flights (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS checkins (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		flight_id      BIGINT UNSIGNED NOT NULL,
		passenger_name VARCHAR(100) NOT NULL,
		seat_number    INT          NOT NULL,
		created_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_checkins_flight_passenger (flight_id, passenger_name),
		CONSTRAINT fk_checkins_flight FOREIGN KEY (flight_id) REFERENCES flights (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)  NOT NULL,
		expires_at DATETIME  NOT NULL,
		revoked_at DATETIME  NULL,
		created_at DATETIME  NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the tables on startup when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
