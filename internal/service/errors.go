package service

import "errors"

// 服务层哨兵错误
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrLoginRateLimited      = errors.New("login attempts rate limited")
	ErrStatusInvalid         = errors.New("status invalid")
	ErrMessageRequired       = errors.New("message required")
	ErrNotifyNotConfigured   = errors.New("notification channel not configured")
	ErrTrackingNotConfigured = errors.New("tracking api not configured")
	ErrTrackingNumberMissing = errors.New("tracking number missing")
)
