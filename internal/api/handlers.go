// Package api exposes the priority classifier and the complaint store over HTTP.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
)

const defaultExtractTimeout = 15 * time.Second

// Classifier decides complaint priority.
type Classifier interface {
	Classify(ctx context.Context, in domain.ClassificationInput) priority.Result
	ModelConfigured() bool
}

// ModelStatus describes the guarded model for the readiness probe.
type ModelStatus interface {
	Name() string
	BreakerOpen() bool
}

// Extractor turns an attachment URL into text.
type Extractor interface {
	Enabled() bool
	Extract(ctx context.Context, attachmentURL, source string) (string, error)
}

// ComplaintStore persists complaints.
type ComplaintStore interface {
	Create(ctx context.Context, c *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Complaint, error)
	ListAll(ctx context.Context, p domain.Priority, limit, offset int) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error
	CountByPriority(ctx context.Context) ([]domain.PriorityCount, error)
}

// RoleLookup resolves the portal role of a user.
type RoleLookup interface {
	GetRole(ctx context.Context, userID string) (domain.Role, error)
}

// ComplaintIndexer mirrors complaints into the dashboard index.
type ComplaintIndexer interface {
	IndexComplaint(ctx context.Context, c *domain.Complaint) error
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error
}

// EventPublisher announces classified complaints.
type EventPublisher interface {
	PublishClassified(ctx context.Context, c *domain.Complaint) error
}

// Metrics counts complaint writes.
type Metrics interface {
	RecordComplaintCreated(p domain.Priority)
	RecordSideEffectFailure(sink string)
}

// Deps are the handler's collaborators. Only Classifier is required; the
// complaint routes answer 503 without a ComplaintStore, and a nil indexer,
// publisher or extractor is skipped.
type Deps struct {
	Classifier Classifier
	Model      ModelStatus
	Extractor  Extractor
	Complaints ComplaintStore
	Roles      RoleLookup
	Index      ComplaintIndexer
	Events     EventPublisher
	Metrics    Metrics
	Logger     infralogger.Logger
}

// Handler handles HTTP requests for the complaint priority API.
type Handler struct {
	deps           Deps
	logger         infralogger.Logger
	extractTimeout time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	log := deps.Logger
	if log == nil {
		log = infralogger.NewNop()
	}
	return &Handler{
		deps:           deps,
		logger:         log,
		extractTimeout: defaultExtractTimeout,
	}
}

// ClassifyPriority handles POST /classify-priority. It always answers 200:
// anything that prevents a decision yields medium plus an error message.
func (h *Handler) ClassifyPriority(c *gin.Context) {
	var req ClassifyPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid classify-priority request", infralogger.Error(err))
		c.JSON(http.StatusOK, ClassifyPriorityResponse{
			Priority: domain.PriorityMedium,
			Error:    "invalid request body",
		})
		return
	}

	res := h.deps.Classifier.Classify(c.Request.Context(), h.classificationInput(c.Request.Context(), req))

	resp := ClassifyPriorityResponse{Priority: res.Priority}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// Classify handles POST /api/v1/classify and returns the full decision trace.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid classification request", infralogger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.deps.Classifier.Classify(c.Request.Context(), h.classificationInput(c.Request.Context(), req))

	resp := ClassifyResponse{Result: res}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	resp := ReadyResponse{
		Status:          "ready",
		ModelConfigured: h.deps.Classifier.ModelConfigured(),
		ComplaintStore:  h.deps.Complaints != nil,
	}
	if h.deps.Model != nil {
		resp.Model = h.deps.Model.Name()
		resp.BreakerOpen = h.deps.Model.BreakerOpen()
	}
	if !resp.ModelConfigured || resp.BreakerOpen {
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

// classificationInput builds the classifier input, fetching attachment text
// from the extraction service when only a URL was supplied. Extraction
// failures are logged and the complaint is classified on its text alone.
func (h *Handler) classificationInput(ctx context.Context, req ClassifyPriorityRequest) domain.ClassificationInput {
	in := domain.ClassificationInput{
		Text:           req.ComplaintText,
		Category:       req.Category,
		AttachmentText: req.AttachmentContent,
		SourceKind:     domain.SourceKind(strings.ToLower(strings.TrimSpace(req.Source))),
	}

	if in.HasAttachment() || strings.TrimSpace(req.AttachmentURL) == "" {
		return in
	}
	if h.deps.Extractor == nil || !h.deps.Extractor.Enabled() {
		return in
	}

	extractCtx, cancel := context.WithTimeout(ctx, h.extractTimeout)
	defer cancel()

	text, err := h.deps.Extractor.Extract(extractCtx, req.AttachmentURL, in.SourceLabel())
	if err != nil {
		h.logger.Warn("Attachment extraction failed",
			infralogger.String("source", in.SourceLabel()),
			infralogger.Error(err),
		)
		return in
	}
	in.AttachmentText = text
	return in
}
