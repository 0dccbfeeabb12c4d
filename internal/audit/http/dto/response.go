// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
)

// AuditRecordResponse represents an audit record in API responses.
type AuditRecordResponse struct {
	ID                  string    `json:"id"`
	PrincipalID         string    `json:"principal_id"`
	OriginalPrincipalID string    `json:"original_principal_id"`
	Capability          string    `json:"capability"`
	ScopeID             string    `json:"scope_id,omitempty"`
	ResourceKey         string    `json:"resource_key,omitempty"`
	Effect              string    `json:"effect"`
	Reason              string    `json:"reason"`
	RequestID           string    `json:"request_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// MapRecordToResponse converts a domain audit record to an API response.
func MapRecordToResponse(record *auditDomain.Record) AuditRecordResponse {
	response := AuditRecordResponse{
		ID:                  record.ID.String(),
		PrincipalID:         record.PrincipalID.String(),
		OriginalPrincipalID: record.OriginalPrincipalID.String(),
		Capability:          record.CapabilityCode,
		ResourceKey:         record.ResourceKey,
		Effect:              string(record.Effect),
		Reason:              record.Reason,
		RequestID:           record.RequestID,
		CreatedAt:           record.CreatedAt,
	}
	if record.ScopeID != nil {
		response.ScopeID = record.ScopeID.String()
	}
	return response
}

// ListAuditRecordsResponse represents a paginated list of audit records.
type ListAuditRecordsResponse struct {
	Data []AuditRecordResponse `json:"data"`
}

// MapRecordsToListResponse converts domain audit records to a list response.
func MapRecordsToListResponse(records []*auditDomain.Record) ListAuditRecordsResponse {
	data := make([]AuditRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRecordToResponse(record))
	}
	return ListAuditRecordsResponse{Data: data}
}
