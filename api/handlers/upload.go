package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dehackhq/dehack-api/config"
	"github.com/dehackhq/dehack-api/models"
)

const maxUploadBytes = 32 << 20

// allowedExtensions is enforced on both upload transports, multipart and
// base64 alike.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

var (
	errNoFile          = errors.New("no file provided")
	errNoImageData     = errors.New("no image data provided")
	errInvalidFileType = errors.New("invalid file type")
	errInvalidImage    = errors.New("invalid image data")
)

// Upload exposes the generic image upload route.
type Upload struct {
	Config config.Config
}

// UploadHandler accepts either a multipart file part or a JSON body carrying
// a base64 data-URL, writes the bytes to the upload dir and returns the
// absolute URL.
func (u Upload) UploadHandler(w http.ResponseWriter, r *http.Request) {
	var filename string
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
			return
		}
		file, header, formErr := r.FormFile("file")
		if formErr != nil {
			config.ErrorStatus("no file provided", http.StatusBadRequest, w, formErr)
			return
		}
		defer file.Close()
		filename, err = saveImagePart(u.Config.UploadDir, file, header)
	} else {
		var body struct {
			Image string `json:"image"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil {
			config.ErrorStatus("no image data provided", http.StatusBadRequest, w, decodeErr)
			return
		}
		filename, err = saveImageDataURL(u.Config.UploadDir, body.Image)
	}
	if err != nil {
		writeImageError(w, err)
		return
	}

	resp := models.UploadResponse{
		URL:      u.Config.ResolveBaseURL(r) + "/uploads/" + filename,
		Filename: filename,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// saveImagePart validates and stores a multipart image part, returning the
// stored filename.
func saveImagePart(uploadDir string, file multipart.File, header *multipart.FileHeader) (string, error) {
	base := filepath.Base(header.Filename)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	if !allowedExtensions[ext] {
		return "", errInvalidFileType
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return writeUpload(uploadDir, strings.TrimSuffix(base, filepath.Ext(base)), ext, data)
}

// saveImageDataURL validates and stores a base64 image, optionally wrapped in
// a data:image/<ext>;base64 URL. The extension defaults to png when the URL
// carries no MIME hint.
func saveImageDataURL(uploadDir, dataURL string) (string, error) {
	if dataURL == "" {
		return "", errNoImageData
	}

	ext := "png"
	payload := dataURL
	if strings.HasPrefix(dataURL, "data:") {
		parts := strings.SplitN(dataURL, ",", 2)
		if len(parts) != 2 {
			return "", errInvalidImage
		}
		meta := parts[0]
		payload = parts[1]
		if strings.HasPrefix(meta, "data:image/") {
			ext = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(meta, "data:image/"), ";base64"))
		}
	}
	if !allowedExtensions[ext] {
		return "", errInvalidFileType
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errInvalidImage
	}
	return writeUpload(uploadDir, "upload", ext, data)
}

// writeUpload stores the bytes under a microsecond-timestamped filename so
// concurrent uploads of the same name cannot collide.
func writeUpload(uploadDir, base, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%d_%s.%s", time.Now().UnixMicro(), base, ext)
	if err := os.WriteFile(filepath.Join(uploadDir, filename), data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// writeImageError maps the image helpers' failures onto the error contract.
func writeImageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNoFile),
		errors.Is(err, errNoImageData),
		errors.Is(err, errInvalidFileType),
		errors.Is(err, errInvalidImage):
		config.ErrorStatus(err.Error(), http.StatusBadRequest, w, err)
	default:
		config.ErrorStatus("failed to save upload", http.StatusInternalServerError, w, err)
	}
}
