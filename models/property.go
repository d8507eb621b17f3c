package models

import "time"

type Property struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	AreaSqm     float64   `json:"area_sqm"`
	RoomsCount  int       `json:"rooms_count"`
	MonthlyRent float64   `json:"monthly_rent"`
	Currency    string    `gorm:"default:UZS" json:"currency"` // UZS or USD
	CreatedAt   time.Time `json:"created_at"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
