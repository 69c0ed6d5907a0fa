package dto

// Request DTOs

type GenerateSlotsRequest struct {
	Date            string `json:"date" validate:"required,yyyymmdd"`
	StartTime       string `json:"start_time" validate:"required,hhmm"`
	EndTime         string `json:"end_time" validate:"required,hhmm"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5,max=480"`
}

type SaveSlotsRequest struct {
	Slots []string `json:"slots" validate:"dive,hhmm"`
}

// Response DTOs

type AvailabilityResponse struct {
	Availability map[string][]string `json:"availability"`
	Dates        []string            `json:"dates"`
}
