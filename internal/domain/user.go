package domain

import "time"

type User struct {
	ID          string     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	YandexID    string     `gorm:"uniqueIndex;not null" json:"-"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Username    string     `gorm:"type:text" json:"username"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	AudioFiles []AudioFile `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

// AudioFile is the metadata row for an uploaded file. FilePath is the
// on-disk location under the configured storage directory; Filename is the
// caller-facing name and is never used as a storage key.
type AudioFile struct {
	ID        string    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Filename  string    `gorm:"type:text;not null" json:"filename"`
	FilePath  string    `gorm:"type:text;not null" json:"file_path"`
	OwnerID   string    `gorm:"type:uuid;index;not null" json:"owner_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AudioFile) TableName() string { return "audio_files" }
