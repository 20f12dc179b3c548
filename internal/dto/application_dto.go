package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitApplicationRequest struct {
	EventId uuid.UUID `json:"-"`
	Message string    `json:"message" validate:"required,max=5000"`
}

type DecideApplicationRequest struct {
	ApplicationId uuid.UUID `json:"-"`
	Decision      string    `json:"decision" validate:"required,oneof=approved rejected"`
}

type AttachmentResponse struct {
	Id          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
}

type ApplicationResponse struct {
	Id          uuid.UUID            `json:"id"`
	EventId     uuid.UUID            `json:"event_id"`
	ApplicantId uuid.UUID            `json:"applicant_id"`
	Message     string               `json:"message"`
	Status      string               `json:"status"`
	DecidedBy   *uuid.UUID           `json:"decided_by,omitempty"`
	DecidedAt   *time.Time           `json:"decided_at,omitempty"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
}
