package users

import "time"

const (
	LevelCustomer = "customer"
	LevelAdmin    = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Level        string    `json:"level"`
	CreatedAt    time.Time `json:"createdAt"`
}
