package receptions

import "errors"

var (
	// ErrReceptionNotFound возвращается, когда приёмка не найдена
	ErrReceptionNotFound = errors.New("reception not found")

	// ErrRecordNotFound возвращается, когда инспекционная запись не найдена
	ErrRecordNotFound = errors.New("inspection record not found")

	// ErrPartRequestNotFound возвращается, когда заявка на запчасть не найдена
	ErrPartRequestNotFound = errors.New("spare part request not found")

	// ErrPartNotFound возвращается, когда запчасть не найдена в справочнике
	ErrPartNotFound = errors.New("spare part not found")

	// ErrInvalidState возвращается, когда переход недопустим из текущего статуса
	ErrInvalidState = errors.New("invalid state for this transition")

	// ErrVersionConflict возвращается при конфликте версии инспекционной записи
	// Клиент должен перечитать запись и повторить с актуальной версией
	ErrVersionConflict = errors.New("inspection record was modified concurrently")

	// ErrInsufficientStock возвращается, когда запчастей на складе меньше запрошенного
	ErrInsufficientStock = errors.New("insufficient spare part stock")

	// ErrInvalidAction возвращается при неизвестном действии инспекционной записи
	ErrInvalidAction = errors.New("invalid inspection record action")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
