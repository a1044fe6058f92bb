package tools

import "time"

// RegisterActionInput carries the multipart form fields; PhotoURL is filled in
// by the handler after the upload is stored, or left empty when no photo was
// sent.
type RegisterActionInput struct {
	ToolID          string
	TechnicianEmail string
	TechnicianName  string
	Action          string
	Condition       string
	PhotoURL        string
}

type RegisterActionResponse struct {
	HistoryID string `json:"historyId"`
	PhotoURL  string `json:"photoUrl"`
	Message   string `json:"message"`
}

type MovementResponse struct {
	ID              string `json:"id"`
	ToolID          string `json:"tool_id"`
	TechnicianEmail string `json:"technician_email"`
	TechnicianName  string `json:"technician_name"`
	Action          string `json:"action"`
	Condition       string `json:"condition"`
	PhotoURL        string `json:"photo_url"`
	Timestamp       string `json:"timestamp"`
}

// ToolStatus is the derived current state of one tool id: its newest movement
// decides whether it is on loan.
type ToolStatus struct {
	ToolID     string `json:"tool_id"`
	OnLoan     bool   `json:"onLoan"`
	HolderName string `json:"holderName,omitempty"`
	HolderMail string `json:"holderEmail,omitempty"`
	LastAction string `json:"lastAction"`
	LastSeen   string `json:"lastSeen"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
	Message   string `json:"message"`
}

func mapToResponse(m Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID.String(),
		ToolID:          m.ToolID,
		TechnicianEmail: m.TechnicianEmail,
		TechnicianName:  m.TechnicianName,
		Action:          m.Action,
		Condition:       m.Condition,
		PhotoURL:        m.PhotoURL,
		Timestamp:       m.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(items []Movement) []MovementResponse {
	resp := make([]MovementResponse, len(items))
	for i, m := range items {
		resp[i] = mapToResponse(m)
	}
	return resp
}
