package models

// OCRPreviewResult represents the extraction-and-filtering stage on its own,
// without running the classifier. It exposes exactly the text the classifier
// would have seen, so OCR quality can be inspected before trusting a verdict.
type OCRPreviewResult struct {
	ExtractedText     string  `json:"extracted_text"`
	PreprocessedText  string  `json:"preprocessed_text"`
	OCREngineUsed     string  `json:"ocr_engine_used"`
	TextDetections    int     `json:"text_detections"`
	IsReputableSource bool    `json:"is_reputable_source"`
	ProcessingTimeSec float64 `json:"processing_time_sec"`

	// Front-page layout summary built from the raw transcript
	Structure *NewspaperStructure `json:"structure,omitempty"`

	// Populated only when the caller supplied expected text
	Accuracy *OCRAccuracy `json:"accuracy,omitempty"`
}

// NewspaperStructure summarizes the recognizable parts of a scanned front page.
type NewspaperStructure struct {
	Outlet             string   `json:"outlet,omitempty"`
	Dates              []string `json:"dates,omitempty"`
	HeadlineCandidates []string `json:"headline_candidates,omitempty"`
	SectionLabels      []string `json:"section_labels,omitempty"`
	WeatherLines       []string `json:"weather_lines,omitempty"`
	Websites           []string `json:"websites,omitempty"`
}

// OCRAccuracy compares a transcript against caller-supplied ground truth.
type OCRAccuracy struct {
	ExpectedText string  `json:"expected_text"`
	WER          float64 `json:"word_error_rate"`
	CER          float64 `json:"character_error_rate"`
	MatchScore   float64 `json:"match_score"` // 0-1, levenshtein similarity
}
