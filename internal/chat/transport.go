package chat

import "homeloans_backend/internal/qualification"

// TurnRequest is the body of POST /chatbot-api.
type TurnRequest struct {
	Message            string                    `json:"message"`
	SessionID          string                    `json:"session_id" validate:"max=256"`
	History            []HistoryEntry            `json:"history" validate:"omitempty,dive"`
	QualificationState *qualification.State      `json:"qualification_state"`
	LeadData           *qualification.LeadRecord `json:"lead_data"`
}

// TurnResponse is the assistant's reply. Booking and relay replies carry
// only role and content.
type TurnResponse struct {
	Role               string                    `json:"role"`
	Content            string                    `json:"content"`
	QualificationState *qualification.State      `json:"qualification_state,omitempty"`
	LeadData           *qualification.LeadRecord `json:"lead_data,omitempty"`
	LeadScore          string                    `json:"lead_score,omitempty"`
}
