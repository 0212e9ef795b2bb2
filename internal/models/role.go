package models

import "time"

type Role struct {
    ID        int64     `gorm:"primaryKey" json:"id"`
    Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}
