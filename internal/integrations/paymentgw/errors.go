package paymentgw

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда шлюз не знает о платеже по бронированию
	ErrPaymentNotFound = errors.New("paymentgw client: payment not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgw client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgw client: invalid response")
)
