package create_booking

import "errors"

var (
	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("create_booking: service center not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда слот вне рабочих часов или не на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда до начала слота меньше минимального запаса
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
