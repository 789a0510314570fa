package handlers

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ValidationResultResponse результат проверки набора запрошенных слотов
type ValidationResultResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Requested    int                `json:"requested"`
	Message      string             `json:"message"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// ConflictResponse конфликт одного запрошенного момента
type ConflictResponse struct {
	Index        int                   `json:"index"`
	RequestedAt  string                `json:"requestedAt"` // RFC3339, UTC
	Reason       string                `json:"reason"`
	Message      string                `json:"message"`
	Alternatives []AlternativeResponse `json:"alternatives"`
}

// AlternativeResponse ближайший свободный слот той же даты
type AlternativeResponse struct {
	Start           string `json:"start"`        // RFC3339, UTC
	End             string `json:"end"`          // RFC3339, UTC
	DisplayStart    string `json:"displayStart"` // RFC3339 со смещением зоны показа
	DisplayEnd      string `json:"displayEnd"`
	DistanceMinutes int    `json:"distanceMinutes"`
}

// FromValidationResult конвертирует результат проверки в HTTP модель
func FromValidationResult(res *domain.ValidationResult) *ValidationResultResponse {
	if res == nil {
		return nil
	}

	conflicts := make([]ConflictResponse, 0, len(res.Conflicts))
	for _, c := range res.Conflicts {
		alternatives := make([]AlternativeResponse, 0, len(c.Alternatives))
		for _, a := range c.Alternatives {
			alternatives = append(alternatives, AlternativeResponse{
				Start:           a.Start.UTC().Format(time.RFC3339),
				End:             a.End.UTC().Format(time.RFC3339),
				DisplayStart:    a.DisplayStart.Format(time.RFC3339),
				DisplayEnd:      a.DisplayEnd.Format(time.RFC3339),
				DistanceMinutes: int(a.Distance / time.Minute),
			})
		}

		conflicts = append(conflicts, ConflictResponse{
			Index:        c.Index,
			RequestedAt:  c.RequestedAt.UTC().Format(time.RFC3339),
			Reason:       string(c.Reason),
			Message:      c.Message,
			Alternatives: alternatives,
		})
	}

	return &ValidationResultResponse{
		HasConflicts: res.HasConflicts,
		Requested:    res.Requested,
		Message:      res.Message,
		Conflicts:    conflicts,
	}
}

// ParseStartTimes разбирает список моментов в формате RFC3339
func ParseStartTimes(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		out = append(out, t.UTC())
	}
	return out, nil
}
