package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newslens/news-inspector-go/internal/config"
	apperrors "github.com/newslens/news-inspector-go/internal/errors"
	"github.com/newslens/news-inspector-go/internal/logger"
	"github.com/newslens/news-inspector-go/internal/observer"
	"github.com/newslens/news-inspector-go/internal/service"
	"github.com/newslens/news-inspector-go/pkg/models"
)

// NewHandler wires the prediction service into an HTTP router
func NewHandler(svc service.PredictionService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		cors.Default(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/languages", listLanguages(svc))
	r.GET("/metrics", showMetrics(metrics))
	r.POST("/predict", predictText(svc, cfg))
	r.POST("/predict/image", predictImage(svc, cfg))
	r.POST("/ocr/preview", previewOCR(svc, cfg))

	return r
}

func predictText(svc service.PredictionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		result, err := svc.Predict(ctx, req.Text)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "prediction failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"label":              result.Label,
			"confidence":         result.Confidence,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Text prediction completed")

		c.JSON(http.StatusOK, result)
	}
}

func predictImage(svc service.PredictionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.ImagePredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		hasImage := strings.TrimSpace(req.ImageBase64) != ""
		hasURL := strings.TrimSpace(req.URL) != ""
		if hasImage == hasURL {
			err := apperrors.NewValidationError("exactly one of image_base64 or url is required", nil)
			respondError(c, apperrors.GetStatusCode(err), "invalid image request", err)
			return
		}

		var result *models.PredictionResult
		var err error
		if hasURL {
			result, err = svc.PredictFromURL(ctx, req.URL, req.LanguageHints)
		} else {
			var img []byte
			img, err = decodeBase64Image(req.ImageBase64)
			if err == nil {
				result, err = svc.PredictFromImage(ctx, img, req.LanguageHints)
			}
		}
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "image prediction failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"label":              result.Label,
			"confidence":         result.Confidence,
			"ocr_engine":         result.OCREngineUsed,
			"text_detections":    result.TextDetections,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Image prediction completed")

		c.JSON(http.StatusOK, result)
	}
}

func previewOCR(svc service.PredictionService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.OCRPreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		img, err := decodeBase64Image(req.ImageBase64)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid image payload", err)
			return
		}

		preview, err := svc.PreviewOCR(ctx, img, req.LanguageHints, req.ExpectedText)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "extraction failed", err)
			return
		}

		c.JSON(http.StatusOK, preview)
	}
}

func listLanguages(svc service.PredictionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.LanguagesResponse{Engines: svc.SupportedLanguages()})
	}
}

func showMetrics(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeBase64Image decodes a base64 payload, tolerating a leading data-URI
// prefix (data:image/png;base64,...)
func decodeBase64Image(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperrors.NewDecodeError("image payload is not valid base64", err)
	}
	return img, nil
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
