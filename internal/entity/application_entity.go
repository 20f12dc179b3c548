package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

type Application struct {
	Id          uuid.UUID
	EventId     uuid.UUID
	ApplicantId uuid.UUID
	Message     string
	Status      ApplicationStatus
	DecidedBy   *uuid.UUID
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// FileAttachment records one uploaded file of an application.
// StorageKey is the object key in the S3 bucket; the blob itself
// lives outside the database.
type FileAttachment struct {
	Id            uuid.UUID
	ApplicationId uuid.UUID
	FileName      string
	ContentType   string
	Size          int64
	StorageKey    string
	CreatedAt     time.Time
}
