package user

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;column:user_id"`
	Username  string    `gorm:"column:username;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
