package get_slot_usage

import "errors"

var (
	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("get_slot_usage: service center not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_usage: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_usage: internal error")
)
