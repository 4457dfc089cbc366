package file

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the public file-sharing surface. No authentication:
// possession of a file id is the only access control.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.POST("/file", h.Upload)
		api.POST("/file/send", h.SendMail)
	}

	files := r.Group("/file")
	{
		files.GET("/:fileId", h.ShareLink)
		files.GET("/downloads/:fileId", h.Download)
	}
}
