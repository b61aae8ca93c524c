package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-assessment-intake/internal/dto"
	"github.com/noah-isme/gema-assessment-intake/internal/observability"
	"github.com/noah-isme/gema-assessment-intake/internal/service"
	"github.com/noah-isme/gema-assessment-intake/internal/utils"
)

// MaxAssessmentBodyBytes caps the accepted request body (50 KiB).
const MaxAssessmentBodyBytes = 50 * 1024

const (
	msgInvalidContentType = "Content-Type deve ser application/json."
	msgPayloadTooLarge    = "Payload excede o limite de 50 KiB."
	msgEmptyBody          = "Corpo da requisição está vazio."
	msgMalformedJSON      = "JSON malformado."
	msgStoreFailed        = "Falha ao salvar avaliação."
)

// AssessmentHandler receives assessment submissions.
type AssessmentHandler struct {
	service service.AssessmentService
	logger  zerolog.Logger
}

// NewAssessmentHandler constructs an assessment handler.
func NewAssessmentHandler(service service.AssessmentService, logger zerolog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assessment_handler").Logger(),
	}
}

// Register wires assessment routes.
func (h *AssessmentHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *AssessmentHandler) submit(c *fiber.Ctx) error {
	if !isJSONContentType(c.Get(fiber.HeaderContentType)) {
		return h.reject(c, msgInvalidContentType)
	}

	// AppConfig's BodyLimit rejects these earlier; kept for apps built without it.
	if c.Request().Header.ContentLength() > MaxAssessmentBodyBytes {
		return h.reject(c, msgPayloadTooLarge)
	}

	body := c.Body()
	if len(body) > MaxAssessmentBodyBytes {
		return h.reject(c, msgPayloadTooLarge)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return h.reject(c, msgEmptyBody)
	}

	var payload dto.AssessmentRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return h.reject(c, msgMalformedJSON)
	}

	accepted, err := h.service.Submit(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().Str("file", accepted.File).Msg("assessment accepted")
	return utils.SendJSON(c, fiber.StatusOK, accepted)
}

func (h *AssessmentHandler) reject(c *fiber.Ctx, message string) error {
	observability.AssessmentSubmissions().WithLabelValues(observability.OutcomeRejected).Inc()
	return utils.SendError(c, fiber.StatusBadRequest, message)
}

func (h *AssessmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return utils.SendError(c, fiber.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrStoreFailed):
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to store assessment")
		return utils.SendError(c, fiber.StatusInternalServerError, msgStoreFailed)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == fiber.MIMEApplicationJSON
}
