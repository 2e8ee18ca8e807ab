package centers

import "errors"

var (
	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("service center not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
