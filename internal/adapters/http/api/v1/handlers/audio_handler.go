package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/audio-service/internal/usecase"
	res "github.com/example/audio-service/pkg/http"
)

type AudioHandler struct {
	service usecase.Service
}

func NewAudioHandler(s usecase.Service) *AudioHandler { return &AudioHandler{service: s} }

func (h *AudioHandler) Upload(c echo.Context) error {
	owner := currentUser(c)
	if owner == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "file field required", requestIDFromCtx(c), nil)
	}
	name := c.FormValue("filename")
	if name == "" {
		name = c.QueryParam("filename")
	}
	src, err := fh.Open()
	if err != nil {
		return res.ErrorJSON(c, http.StatusBadRequest, "bad_request", "unreadable upload", requestIDFromCtx(c), nil)
	}
	defer src.Close()

	file, err := h.service.UploadAudio(c.Request().Context(), requestIDFromCtx(c), owner, usecase.UploadInput{
		Name:             name,
		OriginalFilename: fh.Filename,
		Content:          src,
	})
	if err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, file)
}

func (h *AudioHandler) List(c echo.Context) error {
	owner := currentUser(c)
	if owner == nil {
		return res.ErrorJSON(c, http.StatusUnauthorized, "unauthorized", "missing user context", requestIDFromCtx(c), nil)
	}
	files, err := h.service.ListAudioFiles(c.Request().Context(), requestIDFromCtx(c), owner.ID)
	if err != nil {
		status, errCode := errorStatus(err)
		return res.ErrorJSON(c, status, errCode, err.Error(), requestIDFromCtx(c), nil)
	}
	return res.JSON(c, http.StatusOK, files)
}
