package models

import "time"

type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Username         string     `gorm:"unique" json:"username"`
	Password         string     `json:"-"`
	TelegramID       *int64     `gorm:"unique" json:"telegram_id"` // chat the bot delivers to; nil until bound
	Role             string     `json:"role"`                      // user, admin
	FullName         string     `json:"full_name"`
	PhoneNumber      string     `json:"phone_number"`
	Language         string     `gorm:"default:uz" json:"language"` // uz or ru
	IsPremium        bool       `gorm:"default:false" json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`
	CreatedAt        time.Time  `json:"created_at"`
}
