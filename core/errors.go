package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	AccountErrorBadInput            = "ACCOUNT_BAD_INPUT"
	AccountErrorDuplicateCredential = "ACCOUNT_DUPLICATE_CREDENTIAL"
	AccountErrorInvalidCredential   = "ACCOUNT_INVALID_CREDENTIAL"
	AccountErrorNotFound            = "ACCOUNT_NOT_FOUND"
	AccountErrorRegistrationFailed  = "ACCOUNT_REGISTRATION_FAILED"
	AccountErrorInternal            = "ACCOUNT_INTERNAL_ERROR"
)

func accountErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureAccountErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "already exists"):
		return newAccountError(err.Error(), goerrors.CategoryConflict, AccountErrorDuplicateCredential)
	case strings.Contains(msg, "credential"), strings.Contains(msg, "password"), strings.Contains(msg, "signature"):
		return newAccountError(err.Error(), goerrors.CategoryAuth, AccountErrorInvalidCredential)
	case strings.Contains(msg, "not found"):
		return newAccountError(err.Error(), goerrors.CategoryNotFound, AccountErrorNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newAccountError(err.Error(), goerrors.CategoryBadInput, AccountErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureAccountErrorEnvelope(mapped)
}

func newAccountError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureAccountErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureAccountErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = accountHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultAccountTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultAccountTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return AccountErrorBadInput
	case goerrors.CategoryNotFound:
		return AccountErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return AccountErrorInvalidCredential
	case goerrors.CategoryConflict:
		return AccountErrorDuplicateCredential
	default:
		return AccountErrorInternal
	}
}

func accountHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DuplicateCredentialError builds the domain failure for registration against
// an already used email or wallet address.
func DuplicateCredentialError(message string) *goerrors.Error {
	return newAccountError(message, goerrors.CategoryConflict, AccountErrorDuplicateCredential)
}

// InvalidCredentialError builds the domain failure for authentication with
// mismatched credential material.
func InvalidCredentialError(message string) *goerrors.Error {
	return newAccountError(message, goerrors.CategoryAuth, AccountErrorInvalidCredential)
}

// RegistrationFailedError wraps a mid-workflow registration fault into the
// single caller-visible failure kind, preserving the cause for errors.Is/As.
func RegistrationFailedError(cause error) *goerrors.Error {
	return ensureAccountErrorEnvelope(
		goerrors.Wrap(cause, goerrors.CategoryInternal, "core: could not register account").
			WithTextCode(AccountErrorRegistrationFailed),
	)
}

// IsRegistrationFailure reports whether err is the wrapped workflow failure
// rather than a strategy-level domain error.
func IsRegistrationFailure(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == AccountErrorRegistrationFailed
}
