package entity

import (
	"blend-calendar-api/core/entity"
)

type User struct {
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	entity.BaseEntity
}
