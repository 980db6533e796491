package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"potensidesa/internal/http/middleware"
	"potensidesa/internal/service"
)

// UploadRecorder counts upload outcomes.
type UploadRecorder interface {
	RecordUpload(result string)
}

// UploadImage handles POST /api/upload.
//
// @Summary Upload an image
// @Description Stores an image (max 5MB) under locations/ with public read access.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} model.UploadResult
// @Failure 400 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/upload [post]
func UploadImage(svc service.UploadService, metrics UploadRecorder, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	record := func(result string) {
		if metrics != nil {
			metrics.RecordUpload(result)
		}
	}

	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			record(middleware.UploadRejected)
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", service.ErrFileRequired.Message)
		}

		f, err := fh.Open()
		if err != nil {
			record(middleware.UploadRejected)
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", service.ErrFileRequired.Message)
		}
		defer f.Close()

		res, err := svc.Upload(c.UserContext(), service.UploadInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		})
		if err != nil {
			var ve *service.ValidationError
			if errors.As(err, &ve) {
				record(middleware.UploadRejected)
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILE", ve.Message)
			}
			record(middleware.UploadFailed)
			log.Error("upload_request_failed", zap.String("request_id", middleware.RequestIDFromCtx(c)), zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload file")
		}

		record(middleware.UploadOK)
		return c.JSON(res)
	}
}

// formImage returns the optional image attached under field, or nil when none was chosen.
// The caller must close the returned closer.
func formImage(c *fiber.Ctx, field string) (*service.UploadInput, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Filename == "" || fh.Size == 0 {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
