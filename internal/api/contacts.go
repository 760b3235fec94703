package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rolodex-hq/rolodex/internal/server"
	"github.com/rolodex-hq/rolodex/pkg/models"
)

// ContactRequest is the body of contact create and update requests.
type ContactRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Birthday  apiDate `json:"birthday"`
	Note      *string `json:"note,omitempty"`
}

func (req ContactRequest) toModel() *models.Contact {
	return &models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  req.Birthday.Time,
		Note:      req.Note,
	}
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// ListContactsHandler returns a page of the user's contacts.
// Query parameters: skip (default 0), limit (default 25).
func ListContactsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		skip := queryInt(r, "skip", 0)
		limit := queryInt(r, "limit", 25)

		contacts, err := srv.Contacts.List(r.Context(), user.ID, skip, limit)
		if err != nil {
			srv.Logger.Error("error listing contacts", "error", err, "user_id", user.ID)
			http.Error(w, "Error listing contacts", http.StatusInternalServerError)
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, contacts)
	})
}

// SearchContactHandler returns the first contact matching exactly one of the
// id, first_name, last_name, or email query parameters.
func SearchContactHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		var (
			contact *models.Contact
			err     error
		)
		switch {
		case q.Get("id") != "":
			id, parseErr := strconv.ParseUint(q.Get("id"), 10, 32)
			if parseErr != nil {
				http.Error(w, "Invalid contact ID", http.StatusBadRequest)
				return
			}
			contact, err = srv.Contacts.GetByID(r.Context(), user.ID, uint(id))
		case q.Get("first_name") != "":
			contact, err = srv.Contacts.GetByFirstName(r.Context(), user.ID, q.Get("first_name"))
		case q.Get("last_name") != "":
			contact, err = srv.Contacts.GetByLastName(r.Context(), user.ID, q.Get("last_name"))
		case q.Get("email") != "":
			contact, err = srv.Contacts.GetByEmail(r.Context(), user.ID, q.Get("email"))
		default:
			http.Error(w, "One of id, first_name, last_name, or email is required",
				http.StatusBadRequest)
			return
		}

		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				srv.Logger.Error("error searching contacts", "error", err, "user_id", user.ID)
			}
			http.Error(w, "Contact not found", status)
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, contact)
	})
}

// UpcomingBirthdaysHandler returns the user's contacts with a birthday in
// the next seven days.
func UpcomingBirthdaysHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		contacts, err := srv.Contacts.UpcomingBirthdays(r.Context(), user.ID)
		if err != nil {
			srv.Logger.Error("error listing upcoming birthdays", "error", err, "user_id", user.ID)
			http.Error(w, "Error listing upcoming birthdays", http.StatusInternalServerError)
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, contacts)
	})
}

// CreateContactHandler creates a contact for the user. Responds 409 when the
// user already has a contact with the same email address.
func CreateContactHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		var req ContactRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		contact := req.toModel()
		contact.UserID = user.ID
		if err := contact.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		created, err := srv.Contacts.Create(r.Context(), user.ID, contact)
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				srv.Logger.Error("error creating contact", "error", err, "user_id", user.ID)
				http.Error(w, "Error creating contact", status)
				return
			}
			http.Error(w, "A contact with this email already exists", status)
			return
		}

		respondJSON(w, srv.Logger, http.StatusCreated, created)
	})
}

func contactIDFromURL(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "contactID"), 10, 32)
	return uint(id), err
}

// UpdateContactHandler replaces the fields of one of the user's contacts.
func UpdateContactHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		contactID, err := contactIDFromURL(r)
		if err != nil {
			http.Error(w, "Invalid contact ID", http.StatusBadRequest)
			return
		}

		var req ContactRequest
		if err := decodeRequest(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		contact := req.toModel()
		contact.UserID = user.ID
		if err := contact.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		updated, err := srv.Contacts.Update(r.Context(), user.ID, contactID, contact)
		if err != nil {
			status := statusFromError(err)
			switch status {
			case http.StatusNotFound:
				http.Error(w, "Contact not found", status)
			case http.StatusConflict:
				http.Error(w, "A contact with this email already exists", status)
			default:
				srv.Logger.Error("error updating contact", "error", err,
					"user_id", user.ID, "contact_id", contactID)
				http.Error(w, "Error updating contact", status)
			}
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, updated)
	})
}

// DeleteContactHandler removes one of the user's contacts and returns the
// deleted record.
func DeleteContactHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		contactID, err := contactIDFromURL(r)
		if err != nil {
			http.Error(w, "Invalid contact ID", http.StatusBadRequest)
			return
		}

		deleted, err := srv.Contacts.Delete(r.Context(), user.ID, contactID)
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				srv.Logger.Error("error deleting contact", "error", err,
					"user_id", user.ID, "contact_id", contactID)
				http.Error(w, "Error deleting contact", status)
				return
			}
			http.Error(w, "Contact not found", status)
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, deleted)
	})
}
