package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/jwt"
	infralogger "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/database"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// Side-effect sinks reported to Metrics.
const (
	sinkIndex  = "index"
	sinkEvents = "events"
)

var errNoStore = errors.New("complaint store is not configured")

// CreateComplaint handles POST /api/v1/complaints: classify, store, then
// index and publish. Index and event failures do not fail the request.
func (h *Handler) CreateComplaint(c *gin.Context) {
	userID, ok := h.requireStore(c)
	if !ok {
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	res := h.deps.Classifier.Classify(ctx, h.classificationInput(ctx, ClassifyPriorityRequest{
		ComplaintText:     complaintText(strings.TrimSpace(req.Title), strings.TrimSpace(req.Description)),
		Category:          req.Category,
		AttachmentURL:     req.AttachmentURL,
		Source:            req.Source,
		AttachmentContent: req.AttachmentContent,
	}))
	if res.Err != nil {
		h.logger.Warn("Complaint classified with fallback priority", infralogger.Error(res.Err))
	}

	source := domain.SourceKind(req.Source)
	if source == "" {
		source = domain.SourceText
	}
	complaint := &domain.Complaint{
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.ToLower(strings.TrimSpace(req.Category)),
		Source:        source,
		Priority:      res.Priority,
		PriorityStage: string(res.Stage),
	}
	if req.AttachmentURL != "" {
		url := req.AttachmentURL
		complaint.AttachmentURL = &url
	}

	if err := h.deps.Complaints.Create(ctx, complaint); err != nil {
		h.logger.Error("Failed to store complaint",
			infralogger.String("user_id", userID),
			infralogger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store complaint"})
		return
	}

	if h.deps.Metrics != nil {
		h.deps.Metrics.RecordComplaintCreated(complaint.Priority)
	}
	h.afterCreate(ctx, complaint)

	h.logger.Info("Complaint created",
		infralogger.String("complaint_id", complaint.ID),
		infralogger.String("priority", complaint.Priority.String()),
		infralogger.String("stage", complaint.PriorityStage),
	)
	c.JSON(http.StatusCreated, complaint)
}

func (h *Handler) afterCreate(ctx context.Context, complaint *domain.Complaint) {
	if h.deps.Index != nil {
		if err := h.deps.Index.IndexComplaint(ctx, complaint); err != nil {
			h.sideEffectFailed(sinkIndex, complaint.ID, err)
		}
	}
	if h.deps.Events != nil {
		if err := h.deps.Events.PublishClassified(ctx, complaint); err != nil {
			h.sideEffectFailed(sinkEvents, complaint.ID, err)
		}
	}
}

func (h *Handler) sideEffectFailed(sink, complaintID string, err error) {
	if h.deps.Metrics != nil {
		h.deps.Metrics.RecordSideEffectFailure(sink)
	}
	h.logger.Warn("Complaint side effect failed",
		infralogger.String("sink", sink),
		infralogger.String("complaint_id", complaintID),
		infralogger.Error(err),
	)
}

// ListComplaints handles GET /api/v1/complaints. Citizens see their own
// complaints; officials and admins may pass scope=all and filter by priority.
func (h *Handler) ListComplaints(c *gin.Context) {
	userID, ok := h.requireStore(c)
	if !ok {
		return
	}

	limit, offset, err := pagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var complaints []domain.Complaint

	if c.Query("scope") == "all" {
		role, roleErr := h.role(c, userID)
		if roleErr != nil {
			h.internalError(c, "Failed to resolve role", roleErr)
			return
		}
		if !role.CanManage() {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}

		var filter domain.Priority
		if p := c.Query("priority"); p != "" {
			parsed, valid := domain.ParsePriority(p)
			if !valid {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
				return
			}
			filter = parsed
		}
		complaints, err = h.deps.Complaints.ListAll(ctx, filter, limit, offset)
	} else {
		complaints, err = h.deps.Complaints.ListByUser(ctx, userID, limit, offset)
	}
	if err != nil {
		h.internalError(c, "Failed to list complaints", err)
		return
	}

	c.JSON(http.StatusOK, ComplaintsListResponse{
		Complaints: complaints,
		Count:      len(complaints),
		Limit:      limit,
		Offset:     offset,
	})
}

// GetComplaint handles GET /api/v1/complaints/:id. Complaints of other
// users are reported as not found unless the caller manages complaints.
func (h *Handler) GetComplaint(c *gin.Context) {
	userID, ok := h.requireStore(c)
	if !ok {
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	complaint, err := h.deps.Complaints.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrComplaintNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get complaint", err)
		return
	}

	if complaint.UserID != userID {
		role, roleErr := h.role(c, userID)
		if roleErr != nil {
			h.internalError(c, "Failed to resolve role", roleErr)
			return
		}
		if !role.CanManage() {
			c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
			return
		}
	}

	c.JSON(http.StatusOK, complaint)
}

// UpdateComplaintStatus handles PATCH /api/v1/complaints/:id/status.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	if _, ok := h.requireManager(c); !ok {
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	ctx := c.Request.Context()
	err := h.deps.Complaints.UpdateStatus(ctx, id, req.Status)
	if errors.Is(err, database.ErrComplaintNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to update complaint status", err)
		return
	}

	if h.deps.Index != nil {
		if indexErr := h.deps.Index.UpdateStatus(ctx, id, req.Status); indexErr != nil {
			h.sideEffectFailed(sinkIndex, id, indexErr)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// PriorityStats handles GET /api/v1/stats/priorities.
func (h *Handler) PriorityStats(c *gin.Context) {
	if _, ok := h.requireManager(c); !ok {
		return
	}

	rows, err := h.deps.Complaints.CountByPriority(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to count complaints", err)
		return
	}

	resp := PriorityStatsResponse{Counts: map[domain.Priority]int{
		domain.PriorityHigh:   0,
		domain.PriorityMedium: 0,
		domain.PriorityLow:    0,
	}}
	for _, row := range rows {
		resp.Counts[row.Priority] += row.Count
		resp.Total += row.Count
	}
	c.JSON(http.StatusOK, resp)
}

// requireStore returns the caller's user id, answering the request itself
// when the store is missing or the caller is anonymous. Subjects that are
// not UUIDs cannot own complaints and are rejected.
func (h *Handler) requireStore(c *gin.Context) (string, bool) {
	if h.deps.Complaints == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNoStore.Error()})
		return "", false
	}
	claims, ok := jwt.GetClaims(c)
	if !ok || claims.UserID() == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	userID, valid := parseID(claims.UserID())
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return "", false
	}
	return userID, true
}

// parseID returns raw in canonical UUID form.
func parseID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *Handler) requireManager(c *gin.Context) (string, bool) {
	userID, ok := h.requireStore(c)
	if !ok {
		return "", false
	}
	role, err := h.role(c, userID)
	if err != nil {
		h.internalError(c, "Failed to resolve role", err)
		return "", false
	}
	if !role.CanManage() {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return "", false
	}
	return userID, true
}

// role reads the caller's role from the profile store, falling back to the
// token's role claim when no store is wired.
func (h *Handler) role(c *gin.Context, userID string) (domain.Role, error) {
	if h.deps.Roles != nil {
		return h.deps.Roles.GetRole(c.Request.Context(), userID)
	}
	if claims, ok := jwt.GetClaims(c); ok && claims.Role != "" {
		return domain.Role(claims.Role), nil
	}
	return domain.RoleCitizen, nil
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, infralogger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

var errBadPage = errors.New("limit and offset must be non-negative integers")

func pagination(c *gin.Context) (limit, offset int, err error) {
	if limit, err = queryInt(c, "limit", database.DefaultListLimit); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(c, "offset", 0); err != nil {
		return 0, 0, err
	}
	if limit == 0 {
		limit = database.DefaultListLimit
	}
	if limit > database.MaxListLimit {
		limit = database.MaxListLimit
	}
	return limit, offset, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errBadPage
	}
	return n, nil
}
