package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 100 << 20 // 100MB

// allowedUploadExtensions is the image/video allow-list; anything else is
// rejected before a byte is written.
var allowedUploadExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".mp4":  {},
	".webm": {},
	".mov":  {},
	".m4v":  {},
}

// UploadMedia stores one image or video under uploadDir and answers the
// public path it will be served from. The "image" form field name and the
// duplicate file/image response keys are part of the client contract.
func UploadMedia(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "UPLOAD", "Please upload a file")
			return
		}

		if err := validateUploadFile(file.Filename, file.Header.Get("Content-Type"), file.Size); err != nil {
			respondWithError(c, http.StatusBadRequest, "UPLOAD", err.Error())
			return
		}

		publicPath, err := saveUpload(file, uploadDir)
		if err != nil {
			log.Println("[UPLOAD] [ERROR] save failed:", err)
			respondWithError(c, http.StatusInternalServerError, "UPLOAD", "File save failed")
			return
		}

		log.Println("[UPLOAD] [INFO] file stored:", publicPath)
		c.JSON(http.StatusOK, gin.H{
			"message": "File uploaded",
			"file":    publicPath,
			"image":   publicPath,
		})
	}
}

// validateUploadFile checks extension, MIME type and size against the
// image/video allow-list.
func validateUploadFile(filename, contentType string, size int64) error {
	extension := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedUploadExtensions[extension]; !ok {
		return fmt.Errorf("Images and Videos only!")
	}

	if contentType != "" &&
		!strings.HasPrefix(contentType, "image/") &&
		!strings.HasPrefix(contentType, "video/") {
		return fmt.Errorf("Images and Videos only!")
	}

	if size > maxUploadSize {
		return fmt.Errorf("File too large (max 100MB)")
	}

	return nil
}

func saveUpload(file *multipart.FileHeader, uploadDir string) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	filename := uuid.NewString() + extension

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}
