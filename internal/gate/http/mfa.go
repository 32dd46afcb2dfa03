package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

// MFAHandler handles all MFA-related endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

func toAssurance(a domain.Assurance) gatesdk.Assurance {
	return gatesdk.Assurance{Current: string(a.Current), Next: string(a.Next)}
}

// HandleChallenge handles GET /mfa-verify
//
//	@Summary		Start a step-up challenge
//	@Description	Issues a TOTP challenge bound to the current session. Sessions already at aal2 are sent on to the redirect target.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Produce		json
//	@Param			redirect	query		string	false	"Local path to return to"
//	@Success		200			{object}	gatesdk.ChallengeResponse
//	@Success		303			"Already elevated, or MFA not enrolled"
//	@Failure		401			{object}	gatesdk.APIError
//	@Router			/mfa-verify [get].
func (h *MFAHandler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := subjectFrom(ctx)
	redirect := r.URL.Query().Get("redirect")
	if !httpx.IsLocalPath(redirect) {
		redirect = ""
	}

	sess, err := subject.Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}
	a, err := subject.Assurance(ctx)
	if err != nil {
		writeServiceError(w, r, "mfa assurance", err)
		return
	}
	if a.Current == domain.AAL2 {
		h.onward(w, r, subject, redirect)
		return
	}

	c, err := h.MFAService.IssueChallenge(ctx, sess)
	if err != nil {
		if a.Next != domain.AAL2 {
			httpx.SeeOther(w, r, access.PathMFARequired)
			return
		}
		writeServiceError(w, r, "mfa challenge", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.ChallengeResponse{
		ChallengeID: c.ID,
		ExpiresAt:   c.ExpiresAt,
		Redirect:    redirect,
	})
}

// HandleVerifyChallenge handles POST /mfa-verify
//
//	@Summary		Satisfy a step-up challenge
//	@Description	Checks the code against the challenge and raises the session to aal2.
//	@Description	Redirects only to local paths; anything else falls back to the role home.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body	gatesdk.ChallengeVerifyRequest	true	"Challenge and code"
//	@Success		303	"Redirect to the requested local path or role home"
//	@Failure		400	{object}	gatesdk.APIError	"Invalid code, unknown or expired challenge"
//	@Failure		429	{object}	gatesdk.APIError	"Too many attempts on this challenge, or codes locked for the user"
//	@Router			/mfa-verify [post].
func (h *MFAHandler) HandleVerifyChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := subjectFrom(ctx)

	var req gatesdk.ChallengeVerifyRequest
	err := bind(w, r, &req, func(v url.Values) {
		req.ChallengeID = v.Get("challenge_id")
		req.Code = v.Get("code")
		req.Redirect = v.Get("redirect")
	})
	if err != nil || req.ChallengeID == "" || req.Code == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sess, err := subject.Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}
	if err := h.MFAService.VerifyChallenge(ctx, sess, req.ChallengeID, req.Code); err != nil {
		writeServiceError(w, r, "mfa verify", err)
		return
	}

	slogx.FromContext(ctx).Info("session elevated", "session_id", sess.ID)
	h.onward(w, r, subject, req.Redirect)
}

// onward sends an elevated caller to redirect when it is local, else home.
func (h *MFAHandler) onward(w http.ResponseWriter, r *http.Request, subject *service.Subject, redirect string) {
	if httpx.IsLocalPath(redirect) {
		httpx.SeeOther(w, r, redirect)
		return
	}
	p, err := subject.Profile(r.Context())
	if err != nil {
		httpx.SeeOther(w, r, access.PathLogin)
		return
	}
	httpx.SeeOther(w, r, landing(p.Role, ""))
}

// HandleState handles GET /admin/mfa-required and GET /v1/mfa
//
//	@Summary		MFA status
//	@Description	Reports enrolment and the session's assurance levels. Reachable by any signed-in user.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	gatesdk.MFAStateResponse
//	@Failure		401	{object}	gatesdk.APIError
//	@Router			/admin/mfa-required [get]
//	@Router			/v1/mfa [get].
func (h *MFAHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := subjectFrom(ctx)

	p, err := subject.Profile(ctx)
	if err != nil {
		profileError(w, r, err)
		return
	}
	factors, err := subject.Factors(ctx)
	if err != nil {
		writeServiceError(w, r, "mfa state", err)
		return
	}
	a, err := subject.Assurance(ctx)
	if err != nil {
		writeServiceError(w, r, "mfa state", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.MFAStateResponse{
		Enrolled:  domain.Enrolled(factors),
		Assurance: toAssurance(a),
		Role:      p.Role.String(),
	})
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the caller and returns it with an otpauth URL for the QR code.
//	@Description	A previous pending enrolment is replaced.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	gatesdk.TOTPEnrollResponse	"TOTP secret and QR code"
//	@Failure		401	{object}	gatesdk.APIError
//	@Failure		409	{object}	gatesdk.APIError	"MFA already enabled"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, err := subjectFrom(ctx).User(ctx)
	if err != nil {
		profileError(w, r, err)
		return
	}

	e, err := h.MFAService.EnrollTOTP(ctx, u)
	if err != nil {
		writeServiceError(w, r, "mfa enroll", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.TOTPEnrollResponse{
		FactorID: e.FactorID,
		Secret:   e.Secret,
		QRCode:   e.QRCode,
		Issuer:   e.Issuer,
		Account:  e.Account,
	})
}

// HandleVerifyEnrollment handles POST /v1/mfa/totp/verify
//
//	@Summary		Verify TOTP enrolment
//	@Description	Confirms the pending factor and raises the current session to aal2.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.TOTPCodeRequest		true	"TOTP code"
//	@Success		200		{object}	gatesdk.MFAStateResponse
//	@Failure		400		{object}	gatesdk.APIError	"Invalid code or no pending enrolment"
//	@Failure		401		{object}	gatesdk.APIError
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerifyEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := subjectFrom(ctx)

	var req gatesdk.TOTPCodeRequest
	if err := bind(w, r, &req, func(v url.Values) { req.Code = v.Get("code") }); err != nil || req.Code == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := subject.User(ctx)
	if err != nil {
		profileError(w, r, err)
		return
	}
	sess, err := subject.Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}

	if err := h.MFAService.VerifyEnrollment(ctx, u, sess, req.Code); err != nil {
		writeServiceError(w, r, "mfa verify enrollment", err)
		return
	}

	slogx.FromContext(ctx).Info("mfa enabled", "user_id", u.ID)
	httpx.WriteJSON(w, http.StatusOK, gatesdk.MFAStateResponse{
		Enrolled:  true,
		Assurance: toAssurance(domain.Assurance{Current: domain.AAL2, Next: domain.AAL2}),
		Role:      u.Role.String(),
	})
}

// HandleCancel handles POST /v1/mfa/totp/cancel
//
//	@Summary	Cancel a pending TOTP enrolment
//	@Tags		MFA
//	@Security	SessionCookie
//	@Success	204
//	@Failure	400	{object}	gatesdk.APIError	"No pending enrolment"
//	@Router		/v1/mfa/totp/cancel [post].
func (h *MFAHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := subjectFrom(ctx).Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}
	if err := h.MFAService.CancelEnrollment(ctx, sess.UserID); err != nil {
		writeServiceError(w, r, "mfa cancel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles DELETE /v1/mfa/totp
//
//	@Summary		Remove TOTP MFA
//	@Description	Deletes the verified factor. Requires a current code.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Accept			json
//	@Param			request	body	gatesdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204
//	@Failure		400	{object}	gatesdk.APIError	"Invalid code or MFA not enabled"
//	@Failure		429	{object}	gatesdk.APIError	"Codes locked after repeated failures"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gatesdk.TOTPCodeRequest
	if err := bind(w, r, &req, func(v url.Values) { req.Code = v.Get("code") }); err != nil || req.Code == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := subjectFrom(ctx).User(ctx)
	if err != nil {
		profileError(w, r, err)
		return
	}
	if err := h.MFAService.Unenroll(ctx, u, req.Code); err != nil {
		writeServiceError(w, r, "mfa remove", err)
		return
	}

	slogx.FromContext(ctx).Info("mfa removed", "user_id", u.ID)
	w.WriteHeader(http.StatusNoContent)
}
