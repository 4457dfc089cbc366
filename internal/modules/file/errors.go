package file

import "errors"

var (
	ErrNoFile           = errors.New("no file uploaded")
	ErrEmptyFile        = errors.New("file is empty")
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
	ErrFileNotFound     = errors.New("file not found")
	ErrBlobMissing      = errors.New("file record exists but the stored blob is missing")
	ErrStorageNameTaken = errors.New("storage name already in use")
	ErrMailFailed       = errors.New("unable to send email")
)
