package update_appointment_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`           // confirmed | cancelled
	Reason *string `json:"reason,omitempty"` // причина отмены
}
