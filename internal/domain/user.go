package domain

import (
	"database/sql"
	"time"
)

// User domain model (users table).
type User struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`      // NOT NULL, UNIQUE
	Email        string         `db:"email"`         // NOT NULL, UNIQUE
	PasswordHash string         `db:"password"`      // bcrypt hash
	FullName     string         `db:"full_name"`     // NOT NULL
	Phone        sql.NullString `db:"phone"`         // nullable
	FarmLocation sql.NullString `db:"farm_location"` // nullable, used as forecast location key
	FarmSize     float64        `db:"farm_size"`     // hectares
	CreatedAt    time.Time      `db:"created_at"`
}

// PublicUser is the shape returned to clients (no password hash).
type PublicUser struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone,omitempty"`
	FarmLocation string  `json:"farm_location,omitempty"`
	FarmSize     float64 `json:"farm_size,omitempty"`
}

// Public strips credentials from a User.
func (u *User) Public() PublicUser {
	p := PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		FarmSize: u.FarmSize,
	}
	if u.Phone.Valid {
		p.Phone = u.Phone.String
	}
	if u.FarmLocation.Valid {
		p.FarmLocation = u.FarmLocation.String
	}
	return p
}
