package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"reiadvisor/internal/model"
	"reiadvisor/internal/service"

	"github.com/gin-gonic/gin"
)

// PredictHandler handles the JSON prediction API
type PredictHandler struct {
	predictionService *service.PredictionService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictionService *service.PredictionService) *PredictHandler {
	return &PredictHandler{
		predictionService: predictionService,
	}
}

// Predict handles POST /api/v1/predict
func (h *PredictHandler) Predict(c *gin.Context) {
	var req model.PredictRequest
	if err := decodeStrict(c.Request.Body, &req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Kind:  KindBadRequest,
			Error: "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.predictionService.Predict(c.Request.Context(), &req.Property)
	if err != nil {
		status, resp := describeError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, model.PredictResponse{
		Success: true,
		Result:  result,
	})
}

// decodeStrict decodes exactly one JSON value and rejects unknown keys
func decodeStrict(body io.Reader, dst any) error {
	if body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after the JSON object")
	}
	return nil
}

// Form handles GET /api/v1/form
func (h *PredictHandler) Form(c *gin.Context) {
	schema := h.predictionService.Builder().Schema()
	c.JSON(http.StatusOK, gin.H{
		"schema":         schema,
		"reference_year": h.predictionService.ReferenceYear(),
	})
}

// Vocabulary handles GET /api/v1/vocabulary/:field
func (h *PredictHandler) Vocabulary(c *gin.Context) {
	field := c.Param("field")

	categories, err := h.predictionService.Vocabulary(c.Request.Context(), field)
	if err != nil {
		status, resp := describeError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, model.VocabularyResponse{
		Field:      field,
		Categories: categories,
		Count:      len(categories),
	})
}
