package memory

import (
	"sort"
	"time"

	"getscience-be/internal/repository/specification"

	"github.com/google/uuid"
)

// filters is the in-memory interpretation of the query specifications the
// services actually use. Unknown specification types are ignored.
type filters struct {
	id            *uuid.UUID
	ids           []uuid.UUID
	chatID        *uuid.UUID
	chatIDs       []uuid.UUID
	userID        *uuid.UUID
	eventID       *uuid.UUID
	initiatorID   *uuid.UUID
	applicantID   *uuid.UUID
	organizerID   *uuid.UUID
	applicationID *uuid.UUID
	email         *string
	token         *string
	status        *string
	staffRole     *string
	activeOnly    bool
	sentAfter     *time.Time
	senderNot     *uuid.UUID
	orderDesc     bool
	orderField    string
	limit         int
	offset        int
}

func collect(specs ...specification.Specification) filters {
	f := filters{limit: -1}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			f.id = &id
		case specification.ByIDs:
			f.ids = v.IDs
		case specification.ByChatID:
			id := v.ChatID
			f.chatID = &id
		case specification.ByChatIDs:
			f.chatIDs = v.ChatIDs
		case specification.ByUserID:
			id := v.UserID
			f.userID = &id
		case specification.ByEventID:
			id := v.EventID
			f.eventID = &id
		case specification.ByInitiatorID:
			id := v.InitiatorID
			f.initiatorID = &id
		case specification.ByApplicantID:
			id := v.ApplicantID
			f.applicantID = &id
		case specification.ByOrganizerID:
			id := v.OrganizerID
			f.organizerID = &id
		case specification.ByApplicationID:
			id := v.ApplicationID
			f.applicationID = &id
		case specification.ByEmail:
			email := v.Email
			f.email = &email
		case specification.ByToken:
			token := v.Token
			f.token = &token
		case specification.ByStatus:
			status := v.Status
			f.status = &status
		case specification.ByStaffRole:
			role := v.Role
			f.staffRole = &role
		case specification.ActiveOnly:
			f.activeOnly = true
		case specification.SentAfter:
			after := v.After
			f.sentAfter = &after
		case specification.SenderNot:
			id := v.UserID
			f.senderNot = &id
		case specification.OrderBy:
			f.orderField = v.Field
			f.orderDesc = v.Desc
		case specification.Pagination:
			f.limit = v.Limit
			f.offset = v.Offset
		}
	}
	return f
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// page applies offset/limit after sorting has been done by the caller.
func page[T any](items []T, f filters) []T {
	if f.offset > 0 {
		if f.offset >= len(items) {
			return nil
		}
		items = items[f.offset:]
	}
	if f.limit >= 0 && f.limit < len(items) {
		items = items[:f.limit]
	}
	return items
}

func sortByCreatedAt[T any](items []T, createdAt func(T) time.Time, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return createdAt(items[i]).After(createdAt(items[j]))
		}
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}
