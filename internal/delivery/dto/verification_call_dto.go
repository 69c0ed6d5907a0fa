package dto

import "time"

type ScheduleVerificationCallRequest struct {
	Date string `json:"date" validate:"required,yyyymmdd"`
	Time string `json:"time" validate:"required,hhmm"`
}

type VerificationCallSlotsResponse struct {
	Slots     []string   `json:"slots"`
	Scheduled *time.Time `json:"scheduled,omitempty"`
}

type VerificationCallResponse struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}
