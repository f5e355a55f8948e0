package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/model"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
	"github.com/satvik2131/lamars-truck-backend/internal/usecase/record"
)

const (
	msgTooManyFiles  = "Too many files uploaded"
	msgInvalidData   = "Invalid data"
	msgSaveFailed    = "Failed to save data"
	msgUploadSuccess = "Data successfully uploaded!"
	// MsgUploadFailed is also the blanket message of the panic recoverer.
	MsgUploadFailed = "Failed to upload data"
)

// uploadForm holds what differs between the single and multi image routes.
type uploadForm struct {
	fileField      string
	noFileMsg      string
	mediaFailedMsg string
}

func formFor(layout model.URLLayout) uploadForm {
	if layout == model.LayoutMulti {
		return uploadForm{
			fileField:      "images",
			noFileMsg:      "No files uploaded",
			mediaFailedMsg: MsgUploadFailed,
		}
	}
	return uploadForm{
		fileField:      "image",
		noFileMsg:      "No file uploaded",
		mediaFailedMsg: "Failed to upload image to media store",
	}
}

// UploadRecordHandler accepts a multipart form carrying name, description
// and the image part(s) for layout, and creates one record from them.
func UploadRecordHandler(svc port.RecordCreator, layout model.URLLayout, maxMemory int64) http.HandlerFunc {
	form := formFor(layout)
	maxFiles := record.MaxImages(layout)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(maxMemory); err != nil || r.MultipartForm == nil {
			// a body that is not multipart carries no file
			if err != nil && !errors.Is(err, http.ErrNotMultipart) {
				logger.Warnf(ctx, "could not parse multipart body: %v", err)
			}
			WriteError(ctx, w, http.StatusBadRequest, form.noFileMsg, nil)
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				logger.Warnf(ctx, "could not remove multipart temp files: %v", err)
			}
		}()

		headers := r.MultipartForm.File[form.fileField]
		if len(headers) == 0 {
			WriteError(ctx, w, http.StatusBadRequest, form.noFileMsg, nil)
			return
		}
		if len(headers) > maxFiles {
			WriteError(ctx, w, http.StatusBadRequest, msgTooManyFiles, nil)
			return
		}

		images, closeAll, err := openImages(headers)
		defer closeAll()
		if err != nil {
			WriteError(ctx, w, http.StatusInternalServerError, form.mediaFailedMsg, err)
			return
		}

		in := port.CreateRecordInput{
			Name:        r.PostFormValue("name"),
			Description: r.PostFormValue("description"),
			Images:      images,
		}
		rec, err := svc.CreateRecord(ctx, in)
		if err != nil {
			writeCreateError(ctx, w, form, err)
			return
		}

		RespondJSON(w, http.StatusCreated, SuccessResponse{Message: msgUploadSuccess, Data: rec})
		logger.Infof(ctx, "✅  Successfully created record #%s with %d image(s)", rec.ID, len(images))
	}
}

func writeCreateError(ctx context.Context, w http.ResponseWriter, form uploadForm, err error) {
	var vErr *model.ValidationError
	var upErr *record.MediaUploadError
	switch {
	case errors.Is(err, record.ErrNoImages):
		WriteError(ctx, w, http.StatusBadRequest, form.noFileMsg, nil)
	case errors.Is(err, record.ErrTooManyImages):
		WriteError(ctx, w, http.StatusBadRequest, msgTooManyFiles, nil)
	case errors.As(err, &vErr):
		logger.Errorf(ctx, "❌  Validation failed: %v", vErr)
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{Message: msgInvalidData, Errors: vErr.Fields})
	case errors.As(err, &upErr):
		WriteError(ctx, w, http.StatusInternalServerError, form.mediaFailedMsg, upErr.Err)
	case errors.Is(err, record.ErrPersist):
		WriteError(ctx, w, http.StatusInternalServerError, msgSaveFailed, err)
	default:
		WriteError(ctx, w, http.StatusInternalServerError, MsgUploadFailed, err)
	}
}

// openImages opens every part in order. The returned closer is always safe
// to call.
func openImages(headers []*multipart.FileHeader) ([]port.ImageFile, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	images := make([]port.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		files = append(files, f)
		images = append(images, port.ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}
	return images, closeAll, nil
}
