package create_reception

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_reception: booking not found")

	// ErrReceptionNotFound возвращается, когда приёмка не найдена (recovery path)
	ErrReceptionNotFound = errors.New("create_reception: reception not found")

	// ErrReceptionExists возвращается, когда у бронирования уже есть приёмка
	ErrReceptionExists = errors.New("create_reception: reception already exists for booking")

	// ErrPackageNotFound возвращается, когда пакет ТО не найден
	ErrPackageNotFound = errors.New("create_reception: maintenance package not found")

	// ErrNoPackageSelected возвращается, когда у приёмки нет выбранного пакета (recovery path)
	ErrNoPackageSelected = errors.New("create_reception: reception has no selected package")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reception: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reception: internal error")
)
