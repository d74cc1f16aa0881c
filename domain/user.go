package domain

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"column:full_name;not null" json:"fullName"`
	CPF         string    `gorm:"column:cpf;size:11;unique;not null" json:"cpf"`
	BirthDate   string    `gorm:"column:birth_date" json:"birthDate"`
	PhoneNumber string    `gorm:"column:phone_number;size:11;not null" json:"phoneNumber"`
	Email       string    `gorm:"column:email;unique;not null" json:"email"`
	Address     string    `gorm:"column:address" json:"address"`
	Password    string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
