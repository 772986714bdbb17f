package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type createItemRequest struct {
	Name        string         `json:"name" form:"name" validate:"required"`
	Type        string         `json:"type" form:"type" validate:"required"`
	Description string         `json:"description" form:"description"`
	ReleaseDate *time.Time     `json:"release_date" form:"release_date"`
	Tags        []string       `json:"tags" form:"tags"`
	Meta        map[string]any `json:"meta"`
	Images      []string       `json:"images"`
}

type updateItemRequest struct {
	Name        *string        `json:"name" form:"name"`
	Description *string        `json:"description" form:"description"`
	ReleaseDate *time.Time     `json:"release_date" form:"release_date"`
	Tags        []string       `json:"tags" form:"tags"`
	Meta        map[string]any `json:"meta"`
	Images      []string       `json:"images"`
}

var allowedImageTypes = map[string]bool{
	"image/avif": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// formUploads reads the image files of a multipart request. Every file
// must carry an allowed image content type.
func formUploads(c echo.Context) ([]ports.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	files := form.File["images"]
	uploads := make([]ports.ImageUpload, 0, len(files))
	for _, fh := range files {
		up, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (ports.ImageUpload, error) {
	contentType := fh.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return ports.ImageUpload{}, echo.NewHTTPError(http.StatusBadRequest, "file is not an image")
	}

	f, err := fh.Open()
	if err != nil {
		return ports.ImageUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ports.ImageUpload{}, err
	}

	return ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
