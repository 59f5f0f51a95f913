// Package storage indexes classified complaints into Elasticsearch for
// dashboards.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/domain"
)

// DefaultIndex is the complaints index name.
const DefaultIndex = "complaints"

const complaintsMapping = `{
  "mappings": {
    "properties": {
      "id":             {"type": "keyword"},
      "user_id":        {"type": "keyword"},
      "title":          {"type": "text"},
      "description":    {"type": "text"},
      "category":       {"type": "keyword"},
      "source":         {"type": "keyword"},
      "priority":       {"type": "keyword"},
      "priority_stage": {"type": "keyword"},
      "status":         {"type": "keyword"},
      "created_at":     {"type": "date"},
      "updated_at":     {"type": "date"},
      "indexed_at":     {"type": "date"}
    }
  }
}`

// ComplaintIndex writes complaint documents to one index.
type ComplaintIndex struct {
	client *es.Client
	index  string
}

// complaintDocument is the indexed shape of a complaint.
type complaintDocument struct {
	*domain.Complaint
	IndexedAt time.Time `json:"indexed_at"`
}

// NewComplaintIndex creates an index writer. An empty name uses DefaultIndex.
func NewComplaintIndex(client *es.Client, index string) *ComplaintIndex {
	if index == "" {
		index = DefaultIndex
	}
	return &ComplaintIndex{client: client, index: index}
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (s *ComplaintIndex) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.index, err)
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(strings.NewReader(complaintsMapping)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", s.index, res.String())
	}
	return nil
}

// IndexComplaint upserts c using its id as the document id.
func (s *ComplaintIndex) IndexComplaint(ctx context.Context, c *domain.Complaint) error {
	doc, err := json.Marshal(complaintDocument{Complaint: c, IndexedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal complaint: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(doc),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(c.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index complaint: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing complaint: %s", res.String())
	}
	return nil
}

// UpdateStatus patches the status of an indexed complaint.
func (s *ComplaintIndex) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	body, err := json.Marshal(map[string]any{
		"doc": map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	res, err := s.client.Update(s.index, id, bytes.NewReader(body), s.client.Update.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error updating complaint: %s", res.String())
	}
	return nil
}

// TestConnection pings the cluster.
func (s *ComplaintIndex) TestConnection(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", res.Status())
	}
	return nil
}
