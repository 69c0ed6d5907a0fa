package dto

type ReviewDoctorRequest struct {
	ManualVerificationRequired *bool   `json:"manual_verification_required"`
	VerificationStatus         *string `json:"verification_status" validate:"omitempty,oneof=pending verified rejected"`
	Note                       string  `json:"note" validate:"omitempty,max=500"`
}

type AdminDoctorResponse struct {
	Profile UserProfileResponse    `json:"profile"`
	Doctor  *DoctorProfileResponse `json:"doctor,omitempty"`
	Stage   string                 `json:"stage"`
}

type AdminDoctorListResponse struct {
	Doctors []AdminDoctorResponse `json:"doctors"`
	Total   int                   `json:"total"`
}
