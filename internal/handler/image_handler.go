package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"github.com/pampers23/admin-shoe/pkg/storage"
	"github.com/pampers23/admin-shoe/prometheus"
	"go.uber.org/zap"
)

// UploadImage stores a product image and returns its public URL. The upload is
// independent of product creation; the client sends the URL with the product.
func (h *Handler) UploadImage(c echo.Context) error {
	log := logger.FromEcho(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing image file", zap.Error(err))
		prometheus.RecordImageUpload("rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No file provided"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		prometheus.RecordImageUpload("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	key := storage.ObjectKey(fileHeader.Filename, h.now())
	url, err := h.images.Upload(c.Request().Context(), key, src)
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			log.Warn("Image key already taken", zap.String("key", key))
			prometheus.RecordImageUpload("rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to upload image", zap.String("key", key), zap.Error(err))
		prometheus.RecordImageUpload("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload image"})
	}

	prometheus.RecordImageUpload("success")
	log.Info("Image uploaded successfully",
		zap.String("key", key),
		zap.Int64("size", fileHeader.Size))
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
