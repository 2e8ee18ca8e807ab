package catalog

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет обслуживания не найден
	ErrPackageNotFound = errors.New("catalog.repository: maintenance package not found")

	// ErrPartNotFound возвращается, когда запчасть не найдена
	ErrPartNotFound = errors.New("catalog.repository: spare part not found")

	// ErrInsufficientStock возвращается, когда на складе не хватает запчастей
	ErrInsufficientStock = errors.New("catalog.repository: insufficient stock")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
