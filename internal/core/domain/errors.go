package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOrgExists          = errors.New("organization already exists")
	ErrOrgNotFound        = errors.New("organization not found")
	ErrAlreadySubscribed  = errors.New("already subscribed to organization")
	ErrNotSubscribed      = errors.New("not subscribed to organization")
	ErrDatasetNotFound    = errors.New("dataset not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrEmptyUpload        = errors.New("upload contains no rows")
	ErrMalformedUpload    = errors.New("upload is malformed")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
)
