package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not_found")
	ErrInactiveUser        = errors.New("inactive_user")
	ErrUnsupportedFileType = errors.New("unsupported_file_type")
	ErrStorageWrite        = errors.New("storage_write_failed")
)
