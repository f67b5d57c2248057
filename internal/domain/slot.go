package domain

import "github.com/akaisui/car-repair-backend-sub000/pkg/types"

// TimeSlot represents a bookable slot for a specific date
// Производное значение, никогда не сохраняется
type TimeSlot struct {
	StartTime types.TimeString
	Available bool
}
