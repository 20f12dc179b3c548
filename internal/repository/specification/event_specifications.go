package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEventID struct {
	EventID uuid.UUID
}

func (s ByEventID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_id = ?", s.EventID)
}

type ByOrganizerID struct {
	OrganizerID uuid.UUID
}

func (s ByOrganizerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organizer_id = ?", s.OrganizerID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByStaffRole struct {
	Role string
}

func (s ByStaffRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ByApplicantID struct {
	ApplicantID uuid.UUID
}

func (s ByApplicantID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("applicant_id = ?", s.ApplicantID)
}

type ByApplicationID struct {
	ApplicationID uuid.UUID
}

func (s ByApplicationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("application_id = ?", s.ApplicationID)
}
