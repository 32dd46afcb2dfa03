package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

const maxBodyBytes = 64 << 10

func isJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// bind decodes a JSON body into v, or hands the parsed form to fromForm.
func bind(w http.ResponseWriter, r *http.Request, v any, fromForm func(url.Values)) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(r.Form)
	return nil
}

// serviceErrors maps service sentinels to API errors.
var serviceErrors = []struct {
	err error
	api *gatesdk.APIError
}{
	{service.ErrInvalidCredentials, gatesdk.ErrInvalidCredentials},
	{service.ErrInvalidEmail, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeInvalidEmail, "invalid email address")},
	{service.ErrWeakPassword, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeWeakPassword, "password must be at least 10 characters")},
	{service.ErrEmailTaken, gatesdk.NewAPIError(http.StatusConflict, gatesdk.ErrorCodeEmailTaken, "email already registered")},
	{service.ErrRoleNotSelectable, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeRoleNotSelectable, "role cannot be self-selected")},
	{service.ErrRoleAlreadySet, gatesdk.NewAPIError(http.StatusConflict, gatesdk.ErrorCodeRoleAlreadySet, "role already set")},
	{service.ErrUserNotFound, gatesdk.ErrNotFound},
	{service.ErrUnverifiedIdentity, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeAccessDenied, "identity provider did not verify the email address")},
	{service.ErrIdentityConflict, gatesdk.NewAPIError(http.StatusConflict, gatesdk.ErrorCodeAccessDenied, "account already linked to another identity at this provider")},
	{service.ErrInvalidTOTPCode, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeInvalidCode, "invalid TOTP code")},
	{service.ErrMFAAlreadyEnabled, gatesdk.NewAPIError(http.StatusConflict, gatesdk.ErrorCodeMFAAlreadyEnabled, "MFA is already enabled for this user")},
	{service.ErrMFANotEnabled, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeMFANotEnabled, "MFA is not enabled for this user")},
	{service.ErrNoPendingEnrollment, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeNoPendingEnroll, "no pending MFA enrollment")},
	{service.ErrChallengeNotFound, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeChallengeNotFound, "challenge not found")},
	{service.ErrChallengeExpired, gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeChallengeExpired, "challenge expired")},
	{service.ErrTooManyAttempts, gatesdk.NewAPIError(http.StatusTooManyRequests, gatesdk.ErrorCodeTooManyAttempts, "too many failed attempts; request a new challenge")},
	{service.ErrMFALocked, gatesdk.NewAPIError(http.StatusTooManyRequests, gatesdk.ErrorCodeMFALocked, "too many failed codes; try again later")},
	{service.ErrUnknownPreference, gatesdk.NewAPIError(http.StatusNotFound, gatesdk.ErrorCodeUnknownPreference, "unknown preference")},
}

// writeServiceError answers with the API error for err, logging anything
// unexpected as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := slogx.FromContext(r.Context())
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			log.Info(op+" rejected", slog.String("reason", m.api.Code))
			m.api.WriteError(w)
			return
		}
	}
	log.Error(op+" failed", slog.Any("err", err))
	gatesdk.ErrServerError.WriteError(w)
}
