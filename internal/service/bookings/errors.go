package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("service center not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается, когда переход недопустим из текущего статуса
	ErrInvalidState = errors.New("invalid booking state for this transition")

	// ErrDepositUnpaid возвращается, когда платёжный шлюз не подтверждает оплату
	ErrDepositUnpaid = errors.New("deposit is not paid")

	// ErrPaymentGatewayUnavailable возвращается при недоступности платёжного шлюза
	ErrPaymentGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrTooLateToModify возвращается, когда окно запроса отмены/переноса уже закрыто
	ErrTooLateToModify = errors.New("too late to modify this booking")

	// ErrTooEarly возвращается при попытке принять автомобиль до начала слота
	ErrTooEarly = errors.New("too early to mark booking as received")

	// ErrNoShowExpired возвращается, когда окно прибытия по слоту истекло
	ErrNoShowExpired = errors.New("arrival window expired, booking is a no-show")

	// ErrSlotFull возвращается, когда запрошенный для переноса слот занят
	ErrSlotFull = errors.New("requested slot is full")

	// ErrInvalidTimeSlot возвращается, когда запрошенный слот не проходит правила центра
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrInvalidStatus возвращается при неизвестном значении статуса в фильтре
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
