package models

import "time"

type Guest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Phone      string    `gorm:"size:40" json:"phone"`
	Email      string    `gorm:"size:150" json:"email"`
	Note       string    `gorm:"type:text" json:"note"`
	CPF        string    `gorm:"size:20" json:"cpf"`
	RG         string    `gorm:"size:30" json:"rg"`
	Address    string    `gorm:"type:text" json:"address"`
	Companions string    `gorm:"type:text" json:"companions"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
