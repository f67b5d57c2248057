package get_availability

import (
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
	checkAvailability "github.com/akaisui/car-repair-backend-sub000/internal/usecase/check_availability"
	"github.com/akaisui/car-repair-backend-sub000/pkg/types"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP модель ответа со слотами дня
type AvailabilityResponse struct {
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotResponse `json:"slots"`
}

// toUseCaseRequest собирает модель use case из query параметров
func toUseCaseRequest(dateStr, timeStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{Date: date}

	if timeStr != "" {
		t, err := types.NewTimeStringFromString(timeStr)
		if err != nil {
			return nil, err
		}
		req.Time = &t
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		})
	}

	return result
}
