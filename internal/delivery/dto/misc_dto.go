package dto

type ScanRequest struct {
	URL string `json:"url" validate:"required"`
}

type ScanResponse struct {
	Path string `json:"path"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type HelpResponse struct {
	FAQs         []FAQ  `json:"faqs"`
	SupportEmail string `json:"support_email"`
}
