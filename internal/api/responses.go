package api

import (
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/priority"
)

// ClassifyPriorityRequest is the body of POST /classify-priority.
type ClassifyPriorityRequest struct {
	ComplaintText     string `json:"complaintText"`
	Category          string `json:"category"`
	AttachmentURL     string `json:"attachmentUrl"`
	Source            string `json:"source"`
	AttachmentContent string `json:"attachmentContent"`
}

// ClassifyPriorityResponse is the body returned by POST /classify-priority.
type ClassifyPriorityResponse struct {
	Priority domain.Priority `json:"priority"`
	Error    string          `json:"error,omitempty"`
}

// ClassifyResponse carries the full decision for operators.
type ClassifyResponse struct {
	Result priority.Result `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// ReadyResponse is the body of GET /ready.
type ReadyResponse struct {
	Status          string `json:"status"`
	ModelConfigured bool   `json:"model_configured"`
	Model           string `json:"model,omitempty"`
	BreakerOpen     bool   `json:"breaker_open"`
	ComplaintStore  bool   `json:"complaint_store"`
}

// CreateComplaintRequest is the body of POST /api/v1/complaints.
type CreateComplaintRequest struct {
	Title             string `json:"title"              binding:"required,max=200"`
	Description       string `json:"description"        binding:"required"`
	Category          string `json:"category"           binding:"required"`
	Source            string `json:"source"             binding:"omitempty,oneof=text voice image"`
	AttachmentURL     string `json:"attachment_url"     binding:"omitempty,url"`
	AttachmentContent string `json:"attachment_content"`
}

// UpdateStatusRequest is the body of PATCH /api/v1/complaints/:id/status.
type UpdateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status" binding:"required"`
}

// ComplaintsListResponse is a page of complaints.
type ComplaintsListResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
	Count      int                `json:"count"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// PriorityStatsResponse counts open complaints per priority.
type PriorityStatsResponse struct {
	Counts map[domain.Priority]int `json:"counts"`
	Total  int                     `json:"total"`
}

// complaintText joins title and description into the text that is classified.
func complaintText(title, description string) string {
	switch {
	case title == "":
		return description
	case description == "":
		return title
	default:
		return title + "\n" + description
	}
}
