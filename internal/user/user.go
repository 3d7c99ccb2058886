package user

import (
	"time"

	userDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/user"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	// Password is stored and compared verbatim. Known weakness carried over
	// from the legacy schema; existing rows would not survive a hash upgrade.
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
