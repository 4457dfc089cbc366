package file

import "time"

// File is the metadata record for one stored blob. ID is the public reference
// token clients exchange for links and downloads. StorageName is the internal
// blob key — generator-produced, unique, never exposed and never derived from
// the client-supplied filename.
type File struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	OriginalName string    `gorm:"column:original_name" json:"name"`
	StorageName  string    `gorm:"column:storage_name;uniqueIndex" json:"-"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (File) TableName() string { return "files" }
