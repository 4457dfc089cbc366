package file

import "time"

type UploadResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type ShareLinkResponse struct {
	SharableLink string `json:"sharable_link"`
}

type SendMailRequest struct {
	FileID string `json:"file_id" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}
