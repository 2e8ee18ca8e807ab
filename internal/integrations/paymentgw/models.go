package paymentgw

// DepositStatus статус депозита по бронированию, как его видит платёжный шлюз
// Шлюз для этого сервиса — чёрный ящик: важно только paid/unpaid
type DepositStatus struct {
	BookingID int64   `json:"booking_id"`
	Paid      bool    `json:"paid"`
	Amount    float64 `json:"amount"`
	PaymentID *string `json:"payment_id,omitempty"`
}

// ErrorResponse модель ошибки от платёжного шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
