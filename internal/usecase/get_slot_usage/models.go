package get_slot_usage

import (
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

// Request модель запроса на получение занятости слотов
type Request struct {
	CenterID int64     // ID сервисного центра
	Date     time.Time // Дата, на которую строится сетка слотов
	FromNow  bool      // Вернуть только текущий и будущие слоты (по настенным часам)
	Limit    int       // Ограничить количество слотов в ответе (0 - без ограничения)
}

// Response модель ответа с занятостью слотов на дату
type Response struct {
	CenterID int64              // ID центра
	Date     time.Time          // Дата сетки
	Slots    []domain.SlotUsage // Сетка слотов с занятостью
}
