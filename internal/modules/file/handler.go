package file

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fileshare/internal/pkg/response"
)

// Handler exposes the file pipeline over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts one multipart attachment and returns the public file id.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "Unable to read uploaded file")
		return
	}
	defer src.Close()

	record, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile), errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Uploaded file is empty")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size too large")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "File upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, UploadResponse{
		ID:        record.ID,
		Name:      record.OriginalName,
		MimeType:  record.MimeType,
		Size:      record.Size,
		CreatedAt: record.CreatedAt,
	})
}

// ShareLink returns the relative sharable link for an existing file id.
func (h *Handler) ShareLink(c *gin.Context) {
	link, err := h.service.ShareLink(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "INVALID_FILE_ID", "Invalid file ID")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LINK_FAILED", "Failed to generate sharable link")
		return
	}

	response.Success(c, http.StatusOK, ShareLinkResponse{SharableLink: link})
}

// Download streams the stored bytes back with the original filename as the
// suggested save name.
func (h *Handler) Download(c *gin.Context) {
	record, stream, err := h.service.Download(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "INVALID_FILE_ID", "Invalid file ID")
		case errors.Is(err, ErrBlobMissing):
			response.Error(c, http.StatusInternalServerError, "FILE_UNAVAILABLE", "File is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "File download failed")
		}
		return
	}
	defer stream.Close()

	c.DataFromReader(http.StatusOK, record.Size, record.MimeType, stream, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", record.OriginalName),
	})
}

// SendMail emails the sharable link of an existing file to a recipient.
func (h *Handler) SendMail(c *gin.Context) {
	var req SendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.service.SendShareMail(c.Request.Context(), req.FileID, req.Email); err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "INVALID_FILE_ID", "Invalid file ID")
		case errors.Is(err, ErrMailFailed):
			response.Error(c, http.StatusBadGateway, "MAIL_FAILED", "Unable to send email")
		default:
			response.Error(c, http.StatusInternalServerError, "MAIL_FAILED", "Unable to send email")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Mail sent successfully"})
}
