package models

type Material struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}
