package reception

import "errors"

var (
	// ErrReceptionNotFound возвращается, когда приёмка не найдена
	ErrReceptionNotFound = errors.New("reception.repository: reception not found")

	// ErrRecordNotFound возвращается, когда инспекционная запись не найдена
	ErrRecordNotFound = errors.New("reception.repository: inspection record not found")

	// ErrRecordVersionConflict возвращается при конфликте оптимистичной версии записи
	ErrRecordVersionConflict = errors.New("reception.repository: inspection record version conflict")

	// ErrPartRequestNotFound возвращается, когда заявка на запчасть не найдена
	ErrPartRequestNotFound = errors.New("reception.repository: spare part request not found")

	// ErrStatusConflict возвращается, когда guarded-переход статуса не прошёл
	ErrStatusConflict = errors.New("reception.repository: status conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reception.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reception.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reception.repository: failed to scan row")
)
