package sweep_expired

import "errors"

var (
	// ErrInternal возвращается, когда выборка просроченных бронирований не удалась
	// Ошибки отмены отдельных бронирований в Report.Failed, прогон они не прерывают
	ErrInternal = errors.New("sweep_expired: internal error")
)
