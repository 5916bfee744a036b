package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devdeck/internal/service"
	"devdeck/internal/storage"
)

// multipartOverhead leaves room for form boundaries and headers around the file.
const multipartOverhead = 1 << 20

type AssetResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	SHA256      string `json:"sha256"`
	URL         string `json:"url"`
	CreatedAt   string `json:"createdAt"`
}

func assetToResponse(a service.AssetLink) AssetResponse {
	return AssetResponse{
		ID:          a.ID,
		Name:        a.Name,
		Key:         a.Key,
		ContentType: a.ContentType,
		Size:        a.Size,
		SHA256:      a.SHA256,
		URL:         a.URL,
		CreatedAt:   formatTime(a.CreatedAt),
	}
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	return StorageObjectResponse{
		Key:          obj.Key,
		Size:         obj.Size,
		LastModified: formatTimePtr(obj.LastModified),
	}
}

func (h *Handler) assetsEnabled(c *gin.Context) bool {
	if h.Assets == nil || !h.Assets.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return false
	}
	return true
}

func (h *Handler) listAssets(c *gin.Context) {
	if !h.assetsEnabled(c) {
		return
	}
	assets, err := h.Assets.List(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]AssetResponse, len(assets))
	for i := range assets {
		resp[i] = assetToResponse(assets[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadAsset(c *gin.Context) {
	if !h.assetsEnabled(c) {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		badRequest(c, "multipart field \"file\" is required")
		return
	}
	if header.Size > h.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	asset, err := h.Assets.Upload(c.Request.Context(), userID(c), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assetToResponse(*asset))
}

func (h *Handler) deleteAsset(c *gin.Context) {
	if !h.assetsEnabled(c) {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Assets.Delete(c.Request.Context(), userID(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) deleteAllAssets(c *gin.Context) {
	if !h.assetsEnabled(c) {
		return
	}
	n, err := h.Assets.DeleteAll(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *Handler) listObjects(c *gin.Context) {
	if !h.assetsEnabled(c) {
		return
	}
	objects, err := h.Assets.Objects(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]StorageObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}
