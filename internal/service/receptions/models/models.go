package models

import (
	"errors"
	"time"

	"github.com/no-solace/ev-maintenance-system-sub001/internal/domain"
)

var (
	// ErrInvalidAction возвращается при некорректном действии записи
	ErrInvalidAction = errors.New("invalid inspection record action")
)

// Request модели

// UpdateRecordStatusRequest запрос на обновление одной инспекционной записи
type UpdateRecordStatusRequest struct {
	Action  string `json:"action"`  // pending/inspected/cleaned/replaced/lubricated
	Version int64  `json:"version"` // ожидаемая версия записи
}

// BatchRecordUpdate один элемент батч-обновления
type BatchRecordUpdate struct {
	RecordID int64  `json:"recordId"`
	Action   string `json:"action"`
	Version  int64  `json:"version"`
}

// BatchUpdateRecordsRequest запрос батч-обновления инспекционных записей
type BatchUpdateRecordsRequest struct {
	Updates []BatchRecordUpdate `json:"updates"`
}

// BatchUpdateFailure описание неудавшегося элемента батча
type BatchUpdateFailure struct {
	RecordID int64  `json:"recordId"`
	Error    string `json:"error"`
}

// BatchUpdateRecordsResponse итог батч-обновления
// Применённые обновления не откатываются при сбое остальных
type BatchUpdateRecordsResponse struct {
	Succeeded int                  `json:"succeeded"`
	Failed    []BatchUpdateFailure `json:"failed,omitempty"`
}

// CreatePartRequestRequest заявка техника на запчасть
type CreatePartRequestRequest struct {
	PartID   int64 `json:"partId"`
	Quantity int   `json:"quantity"`
}

// AssignTechnicianRequest назначение техника на приёмку
type AssignTechnicianRequest struct {
	TechnicianID int64 `json:"technicianId"`
}

// Response модели

// ReceptionResponse ответ с данными приёмки
type ReceptionResponse struct {
	ID        int64  `json:"id"`
	BookingID *int64 `json:"bookingId,omitempty"`

	CustomerID    int64  `json:"customerId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	VehicleID     int64  `json:"vehicleId"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
	VehiclePlate  string `json:"vehiclePlate,omitempty"`
	CenterID      int64  `json:"centerId"`

	TechnicianID *int64 `json:"technicianId,omitempty"`
	PackageID    *int64 `json:"packageId,omitempty"`

	Status    string  `json:"status"`
	TotalCost float64 `json:"totalCost"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// RecordResponse ответ с данными инспекционной записи
type RecordResponse struct {
	ID          int64 `json:"id"`
	ReceptionID int64 `json:"receptionId"`
	TaskID      int64 `json:"taskId"`

	Action  string `json:"action"`
	Version int64  `json:"version"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RecordListResponse ответ со списком инспекционных записей
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
}

// PartRequestResponse ответ с данными заявки на запчасть
type PartRequestResponse struct {
	ID          int64 `json:"id"`
	ReceptionID int64 `json:"receptionId"`
	PartID      int64 `json:"partId"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Status    string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PartRequestListResponse ответ со списком заявок на запчасти
type PartRequestListResponse struct {
	Requests []PartRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainReception конвертирует domain модель в DTO
func FromDomainReception(r *domain.Reception) *ReceptionResponse {
	if r == nil {
		return nil
	}
	return &ReceptionResponse{
		ID:            r.ID,
		BookingID:     r.BookingID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		VehicleID:     r.VehicleID,
		VehicleModel:  r.VehicleModel,
		VehiclePlate:  r.VehiclePlate,
		CenterID:      r.CenterID,
		TechnicianID:  r.TechnicianID,
		PackageID:     r.PackageID,
		Status:        string(r.Status),
		TotalCost:     r.TotalCost,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		CompletedAt:   r.CompletedAt,
	}
}

// FromDomainRecord конвертирует инспекционную запись в DTO
func FromDomainRecord(r *domain.InspectionRecord) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		ID:          r.ID,
		ReceptionID: r.ReceptionID,
		TaskID:      r.TaskID,
		Action:      string(r.Action),
		Version:     r.Version,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainRecordList конвертирует список записей в DTO
func FromDomainRecordList(records []*domain.InspectionRecord) *RecordListResponse {
	result := &RecordListResponse{
		Records: make([]RecordResponse, 0, len(records)),
	}
	for _, r := range records {
		result.Records = append(result.Records, *FromDomainRecord(r))
	}
	return result
}

// FromDomainPartRequest конвертирует заявку на запчасть в DTO
func FromDomainPartRequest(r *domain.SparePartRequest) *PartRequestResponse {
	if r == nil {
		return nil
	}
	return &PartRequestResponse{
		ID:          r.ID,
		ReceptionID: r.ReceptionID,
		PartID:      r.PartID,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainPartRequestList конвертирует список заявок в DTO
func FromDomainPartRequestList(requests []*domain.SparePartRequest) *PartRequestListResponse {
	result := &PartRequestListResponse{
		Requests: make([]PartRequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		result.Requests = append(result.Requests, *FromDomainPartRequest(r))
	}
	return result
}

// ToDomainRecordAction конвертирует строку в действие инспекционной записи
func ToDomainRecordAction(s string) (domain.RecordAction, error) {
	action := domain.RecordAction(s)
	switch action {
	case domain.ActionPending,
		domain.ActionInspected,
		domain.ActionCleaned,
		domain.ActionReplaced,
		domain.ActionLubricated:
		return action, nil
	default:
		return "", ErrInvalidAction
	}
}
