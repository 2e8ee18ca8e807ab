package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("reschedule_booking: service center not found")

	// ErrNoPendingRequest возвращается, когда у бронирования нет открытого запроса на перенос
	ErrNoPendingRequest = errors.New("reschedule_booking: no pending reschedule request")

	// ErrInvalidTimeSlot возвращается, когда запрошенный слот вне рабочих часов или не на сетке
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrSlotFull возвращается, когда в целевом слоте нет мест
	// Исходный слот бронирования при этом остаётся без изменений
	ErrSlotFull = errors.New("reschedule_booking: target slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
