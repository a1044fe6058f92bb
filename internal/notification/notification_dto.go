package notification

import "time"

type NotificationResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Message      string  `json:"message"`
	Category     string  `json:"category"`
	TargetRole   *string `json:"targetRole,omitempty"`
	TargetUserID *string `json:"targetUserId,omitempty"`
	RefType      string  `json:"refType"`
	RefID        string  `json:"refId"`
	Read         bool    `json:"read"`
	CreatedAt    string  `json:"createdAt"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID.String(),
		Title:        n.Title,
		Message:      n.Message,
		Category:     n.Category,
		TargetRole:   n.TargetRole,
		TargetUserID: n.TargetUserID,
		RefType:      n.RefType,
		RefID:        n.RefID,
		Read:         n.Read,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(items []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp
}
