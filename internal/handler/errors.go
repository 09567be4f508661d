package handler

import (
	"errors"
	"net/http"

	"reiadvisor/internal/model"
	"reiadvisor/internal/service"
)

// Error kinds reported to clients
const (
	KindArtifactsUnavailable = "artifacts_unavailable"
	KindValidation           = "validation"
	KindTransform            = "transform"
	KindPrediction           = "prediction"
	KindUnknownField         = "unknown_field"
	KindBadRequest           = "bad_request"
	KindInternal             = "internal"
)

const (
	hintArtifacts = "Ensure the model artifacts are present where the server expects them, then restart it."
	hintTransform = "Ensure the inputs (like 'Locality') match the format seen during training."
)

// describeError maps a service error onto an HTTP status and a user-visible
// message with a remediation hint
func describeError(err error) (int, model.ErrorResponse) {
	var (
		verr *service.ValidationError
		terr *service.TransformError
		perr *service.PredictionError
	)

	switch {
	case errors.Is(err, service.ErrArtifactsUnavailable):
		return http.StatusServiceUnavailable, model.ErrorResponse{
			Kind:  KindArtifactsUnavailable,
			Error: "Artifacts not loaded. Cannot predict.",
			Hint:  hintArtifacts,
		}
	case errors.As(err, &verr):
		return http.StatusBadRequest, model.ErrorResponse{
			Kind:  KindValidation,
			Error: verr.Error(),
			Field: verr.Field,
		}
	case errors.As(err, &terr):
		return http.StatusUnprocessableEntity, model.ErrorResponse{
			Kind:  KindTransform,
			Error: "An error occurred during prediction: " + terr.Error(),
			Hint:  hintTransform,
		}
	case errors.As(err, &perr):
		return http.StatusInternalServerError, model.ErrorResponse{
			Kind:  KindPrediction,
			Error: "An error occurred during prediction: " + perr.Error(),
			Hint:  hintTransform,
		}
	case errors.Is(err, service.ErrUnknownField):
		return http.StatusNotFound, model.ErrorResponse{
			Kind:  KindUnknownField,
			Error: err.Error(),
		}
	default:
		return http.StatusInternalServerError, model.ErrorResponse{
			Kind:  KindInternal,
			Error: err.Error(),
		}
	}
}
