package request

import (
	"encoding/json"
	"time"
)

// SubmitRequest is the generic submission body. Data is kept opaque: the
// workflow never validates per-type shape, only that something was sent.
type SubmitRequest struct {
	Type          string          `json:"type" binding:"required"`
	EmployeeEmail string          `json:"employeeEmail" binding:"required,email"`
	EmployeeName  string          `json:"employeeName"`
	ManagerEmail  string          `json:"managerEmail" binding:"required,email"`
	Data          json.RawMessage `json:"data" binding:"required"`
}

// MedicalLeaveInput carries the multipart fields of a leave submission plus
// the already-stored certificate path.
type MedicalLeaveInput struct {
	EmployeeEmail string
	EmployeeName  string
	ManagerEmail  string
	StartDate     string
	EndDate       string
	Diagnosis     string
	DocumentURL   string
}

type SubmitResponse struct {
	RequestID   string `json:"requestId"`
	DocumentURL string `json:"documentUrl,omitempty"`
	Message     string `json:"message"`
}

// ListFilters are AND-ed together; zero values mean "no filter". From/To bound
// created_at.
type ListFilters struct {
	Status        string
	ManagerEmail  string
	EmployeeEmail string
	Type          string
	From          time.Time
	To            time.Time
}

type DecideRequest struct {
	Status         string `json:"status" binding:"required"`
	ManagerComment string `json:"managerComment"`
}

type RequestResponse struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	EmployeeEmail string         `json:"employeeEmail"`
	EmployeeName  string         `json:"employeeName"`
	ManagerEmail  string         `json:"managerEmail"`
	Data          map[string]any `json:"data"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"createdAt"`
	DecidedAt     *string        `json:"decidedAt,omitempty"`
}

// DecisionResponse is the updated request; DocumentURL is set only when an
// approved CERTIFICADO produced a certificate PDF.
type DecisionResponse struct {
	RequestResponse
	DocumentURL string `json:"documentUrl,omitempty"`
}

// mapToResponse decodes the stored payload and, once decided, merges the
// manager comment into it. Old clients read the comment out of the payload
// object, so the merged view is the wire contract even though storage keeps
// the two apart.
func mapToResponse(r Request) RequestResponse {
	data := decodePayload(r.Payload)
	if r.ManagerComment != nil {
		data["managerComment"] = *r.ManagerComment
	}

	resp := RequestResponse{
		ID:            r.ID.String(),
		Type:          r.Type,
		EmployeeEmail: r.EmployeeEmail,
		EmployeeName:  r.EmployeeName,
		ManagerEmail:  r.ManagerEmail,
		Data:          data,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(items []Request) []RequestResponse {
	resp := make([]RequestResponse, len(items))
	for i, r := range items {
		resp[i] = mapToResponse(r)
	}
	return resp
}

// decodePayload falls back to an empty object on corrupt JSON rather than
// failing the read.
func decodePayload(payload string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}
