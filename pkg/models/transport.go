package models

// PredictRequest represents a plain-text classification request
type PredictRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImagePredictRequest represents an image classification request.
// Exactly one of ImageBase64 or URL must be provided; base64 payloads may
// carry a data-URI prefix.
type ImagePredictRequest struct {
	ImageBase64   string   `json:"image_base64,omitempty"`
	URL           string   `json:"url,omitempty"`
	LanguageHints []string `json:"language_hints,omitempty"`
}

// OCRPreviewRequest represents an extraction-only request
type OCRPreviewRequest struct {
	ImageBase64   string   `json:"image_base64" binding:"required"`
	LanguageHints []string `json:"language_hints,omitempty"`
	ExpectedText  string   `json:"expected_text,omitempty"`
}

// LanguagesResponse lists the language codes each engine accepts
type LanguagesResponse struct {
	Engines map[string][]string `json:"engines"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
