package handler

import (
	"mime/multipart"

	"employee-list/internal/apperror"

	"github.com/labstack/echo/v4"
)

const photoField = "employee_photo_upload"

type ImageGallery interface {
	ListImageURLs() ([]string, error)
	UploadImages(files []*multipart.FileHeader, firstName, lastName string) ([]string, error)
	DeleteImage(url string) (string, error)
}

type GalleryHandler struct {
	gallery ImageGallery
}

func NewGalleryHandler(gallery ImageGallery) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

func (h *GalleryHandler) ImageURLs(c echo.Context) error {
	urls, err := h.gallery.ListImageURLs()
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, urls)
}

func (h *GalleryHandler) DeleteImage(c echo.Context) error {
	name, err := h.gallery.DeleteImage(c.FormValue("image_url"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, name)
}

// Upload stores the posted photos; optional first_name and last_name rename the file
func (h *GalleryHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, apperror.Wrap(apperror.CodeValidation, "multipart form expected", err))
	}
	files := form.File[photoField]
	if len(files) == 0 {
		return respondError(c, apperror.New(apperror.CodeValidation, "no file uploaded"))
	}

	urls, err := h.gallery.UploadImages(files, c.FormValue("first_name"), c.FormValue("last_name"))
	if len(urls) == 0 {
		if err != nil {
			return respondError(c, err)
		}
		return respondError(c, apperror.New(apperror.CodeValidation, "no valid image uploaded"))
	}
	return respondSuccess(c, urls)
}
