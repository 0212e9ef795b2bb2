package models

import "time"

type Plan struct {
    ID           int64  `gorm:"primaryKey" json:"id"`
    Name         string `gorm:"uniqueIndex;size:50;not null" json:"name"`
    Description  string `json:"description"`
    IsFree       bool   `gorm:"default:false;index" json:"is_free"`
    MaxProjects  int    `gorm:"default:1" json:"max_projects"`
    MaxUsers     int    `gorm:"default:1" json:"max_users"`
    MaxStorageMB int    `gorm:"default:100" json:"max_storage_mb"`
    CreatedAt    time.Time `json:"created_at"`
}
