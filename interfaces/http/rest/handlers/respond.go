// Package handlers implements the REST handlers. Every handler runs the
// provisioner before touching business logic, mirroring the resolver
// surface, and maps AppError kinds to HTTP statuses.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"linkpage-backend/domain"
	"linkpage-backend/pkg/auth"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps the error to its HTTP status and writes the AppError
// body. Non-AppError failures surface as a generic internal error.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		logger.Error("unclassified handler error", zap.Error(err))
		appErr = apperrors.NewInternalError("internal error", err)
	}
	respondJSON(w, apperrors.HTTPStatusFor(appErr), appErr)
}

// callerIdentity extracts the authenticated identity set by the auth
// middleware
func callerIdentity(r *http.Request) (domain.Identity, error) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorizedError("")
	}
	return domain.Identity{
		SubjectID: user.SubjectID,
		Username:  user.Username,
	}, nil
}

// decodeBody decodes a JSON request body into the handler's request shape
func decodeBody(r *http.Request, into interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return apperrors.NewValidationError("invalid request body").WithCause(err)
	}
	return nil
}

// validateRequest applies the request struct's validation tags
func validateRequest(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
