package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newslens/news-inspector-go/internal/config"
	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/internal/observer"
	"github.com/newslens/news-inspector-go/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService returns canned results so the handler can be tested without a
// trained model or an OCR engine
type fakeService struct {
	predictErr error
	imageErr   error
}

func (f *fakeService) Predict(ctx context.Context, text string) (*models.PredictionResult, error) {
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	return &models.PredictionResult{Label: models.LabelReal, Confidence: 92.41}, nil
}

func (f *fakeService) PredictFromImage(ctx context.Context, image []byte, hints []string) (*models.PredictionResult, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return &models.PredictionResult{
		Label:          models.LabelFake,
		Confidence:     77.5,
		OCREngineUsed:  "tesseract",
		TextDetections: 4,
	}, nil
}

func (f *fakeService) PredictFromURL(ctx context.Context, imageURL string, hints []string) (*models.PredictionResult, error) {
	result, err := f.PredictFromImage(ctx, nil, hints)
	if err != nil {
		return nil, err
	}
	result.ImageURL = imageURL
	return result, nil
}

func (f *fakeService) PreviewOCR(ctx context.Context, image []byte, hints []string, expectedText string) (*models.OCRPreviewResult, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return &models.OCRPreviewResult{ExtractedText: "THE DAILY HERALD", OCREngineUsed: "tesseract"}, nil
}

func (f *fakeService) SupportedLanguages() map[string][]string {
	return map[string][]string{"tesseract": {"eng", "fra"}}
}

func testConfig() *config.Config {
	return &config.Config{
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
}

func newTestRouter(svc *fakeService) http.Handler {
	return NewHandler(svc, observer.NewMetricsObserver(), testConfig())
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doRequest(t, newTestRouter(&fakeService{}), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	w := doRequest(t, newTestRouter(&fakeService{}), http.MethodGet, "/languages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.LanguagesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Engines["tesseract"]) != 2 {
		t.Errorf("engines = %v, want tesseract with 2 codes", resp.Engines)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	w := doRequest(t, newTestRouter(&fakeService{}), http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "total_predictions") {
		t.Errorf("metrics body = %s", w.Body.String())
	}
}

func TestPredictEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeService
		wantStatus int
	}{
		{
			name:       "Valid text",
			body:       `{"text":"parliament passed the budget"}`,
			svc:        &fakeService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing text field",
			body:       `{}`,
			svc:        &fakeService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed JSON",
			body:       `{"text":`,
			svc:        &fakeService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Empty input error maps to 400",
			body:       `{"text":"x"}`,
			svc:        &fakeService{predictErr: apperrors.NewEmptyInputError("nothing left")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Unfitted model maps to 500",
			body:       `{"text":"x"}`,
			svc:        &fakeService{predictErr: apperrors.NewNotFittedError("no model", nil)},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, newTestRouter(tt.svc), http.MethodPost, "/predict", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestPredictImageEndpoint(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	tests := []struct {
		name       string
		body       string
		svc        *fakeService
		wantStatus int
	}{
		{
			name:       "Base64 payload",
			body:       `{"image_base64":"` + encoded + `"}`,
			svc:        &fakeService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Data URI prefix accepted",
			body:       `{"image_base64":"data:image/png;base64,` + encoded + `"}`,
			svc:        &fakeService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "URL payload",
			body:       `{"url":"https://example.com/scan.png"}`,
			svc:        &fakeService{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Neither image nor URL",
			body:       `{}`,
			svc:        &fakeService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Both image and URL",
			body:       `{"image_base64":"` + encoded + `","url":"https://example.com/x.png"}`,
			svc:        &fakeService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Invalid base64",
			body:       `{"image_base64":"not-base-64!!!"}`,
			svc:        &fakeService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "OCR failure maps to 502",
			body:       `{"image_base64":"` + encoded + `"}`,
			svc:        &fakeService{imageErr: apperrors.NewOCRError("engine crashed", nil)},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, newTestRouter(tt.svc), http.MethodPost, "/predict/image", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestPredictImageURLEcho(t *testing.T) {
	w := doRequest(t, newTestRouter(&fakeService{}), http.MethodPost, "/predict/image",
		`{"url":"https://example.com/scan.png"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var result models.PredictionResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.ImageURL != "https://example.com/scan.png" {
		t.Errorf("image_url = %q", result.ImageURL)
	}
}

func TestOCRPreviewEndpoint(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "Valid payload",
			body:       `{"image_base64":"` + encoded + `"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "With expected text",
			body:       `{"image_base64":"` + encoded + `","expected_text":"THE DAILY HERALD"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing image",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, newTestRouter(&fakeService{}), http.MethodPost, "/ocr/preview", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequestSizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequestBodySize = 64
	router := NewHandler(&fakeService{}, observer.NewMetricsObserver(), cfg)

	big := `{"text":"` + strings.Repeat("a", 256) + `"}`
	w := doRequest(t, router, http.MethodPost, "/predict", big)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an oversized body", w.Code)
	}
}
