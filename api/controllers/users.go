package controllers

import (
	"net/http"

	"github.com/tacocrew/tacocrew-backend/api/responses"
	"github.com/tacocrew/tacocrew-backend/api/validators"
	usersvc "github.com/tacocrew/tacocrew-backend/internal/users"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
)

type createUserRequest struct {
	Username         string  `json:"username" validate:"required"`
	ExternalProvider *string `json:"external_provider"`
	ExternalSubject  *string `json:"external_subject"`
}

// UserCreate registers a new user and returns it together with an access token.
func UserCreate(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateUser(r.Context(), usersvc.CreateUserInput{
			Username:         payload.Username,
			ExternalProvider: payload.ExternalProvider,
			ExternalSubject:  payload.ExternalSubject,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UserMe returns the authenticated user's profile.
func UserMe(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Last-seen bookkeeping is best effort.
		_ = svc.TouchLastSeen(r.Context(), userID)

		responses.WriteSuccess(w, user)
	}
}
