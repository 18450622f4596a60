package api

import (
	"errors"
	"net/http"

	"helheim/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var credentials *domain.CredentialsError
	var backend *domain.BackendError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &credentials):
		return http.StatusUnauthorized
	case errors.As(err, &backend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
