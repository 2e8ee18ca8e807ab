package sweep_expired

// Report итог одного прогона sweeper'а
type Report struct {
	Scanned   int // Сколько просроченных pending_payment нашла выборка
	Cancelled int // Сколько удалось отменить
	Skipped   int // Сколько успело сменить статус между выборкой и отменой
	Failed    int // Сколько отмен упало с ошибкой
}
