package http

import (
	"net/http"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

// SectionHandler is the guarded shell of one section. The page guard runs
// on every request, independently of the edge gate.
type SectionHandler struct {
	Section          access.Section
	Policy           access.Policy
	DashboardService *service.DashboardService
}

// ServeHTTP handles GET /candidate, /recruiter, /school, /admin and /dashboard
//
//	@Summary		Section shell
//	@Description	Renders a role section with its supplementary data, or redirects a caller who may not see it.
//	@Tags			Sections
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	gatesdk.SectionResponse
//	@Success		303	"Redirect to login, profile completion, MFA setup, step-up or the caller's home"
//	@Router			/candidate [get]
//	@Router			/recruiter [get]
//	@Router			/school [get]
//	@Router			/admin [get]
//	@Router			/dashboard [get].
func (h *SectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := subjectFrom(ctx)

	d := h.Policy.Guard(ctx, h.Section, r.URL.RequestURI(), subject)
	logDecision(ctx, d)
	if !d.Allow {
		httpx.SeeOther(w, r, d.Target)
		return
	}

	// The guard resolved these already; the subject memoises them.
	p, err := subject.Profile(ctx)
	if err != nil {
		httpx.SeeOther(w, r, access.PathLogin)
		return
	}
	factors, err := subject.Factors(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("factor lookup failed", "err", err)
		httpx.SeeOther(w, r, access.PathLogin)
		return
	}

	data, err := h.DashboardService.Section(ctx, h.Section, p, domain.Enrolled(factors))
	if err != nil {
		writeServiceError(w, r, "section data", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSectionResponse(data))
}

func toSectionResponse(d service.SectionData) gatesdk.SectionResponse {
	resp := gatesdk.SectionResponse{
		Section: string(d.Section),
		Profile: gatesdk.Profile{
			UserID:        d.Profile.UserID,
			Email:         d.Profile.Email,
			FullName:      d.Profile.FullName,
			Role:          d.Profile.Role.String(),
			Approved:      d.Profile.Approved,
			EmailVerified: d.Profile.EmailVerified,
		},
		PendingApprovals: d.PendingApprovals,
		Approved:         d.Approved,
		ShowMFABanner:    d.ShowMFABanner,
	}
	if d.School != nil {
		resp.School = &gatesdk.SchoolProfile{SchoolName: d.School.SchoolName, Website: d.School.Website}
	}
	return resp
}

// AdminHandler serves admin actions. Each action re-runs the admin guard.
type AdminHandler struct {
	Policy          access.Policy
	IdentityService *service.IdentityService
}

// HandleApproveRecruiter handles POST /admin/recruiters/{id}/approve
//
//	@Summary		Approve a recruiter
//	@Description	Requires an admin session at aal2. The recruiter is emailed.
//	@Tags			Admin
//	@Security		SessionCookie
//	@Param			id	path	string	true	"Recruiter user id"
//	@Success		204
//	@Failure		401	{object}	gatesdk.APIError
//	@Failure		403	{object}	gatesdk.APIError	"Not an admin, or step-up required"
//	@Failure		404	{object}	gatesdk.APIError	"No such recruiter"
//	@Router			/admin/recruiters/{id}/approve [post].
func (h *AdminHandler) HandleApproveRecruiter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d := h.Policy.Guard(ctx, access.SectionAdmin, r.URL.RequestURI(), subjectFrom(ctx))
	logDecision(ctx, d)
	if !d.Allow {
		if d.Target == access.PathLogin {
			gatesdk.ErrUnauthenticated.WriteError(w)
			return
		}
		gatesdk.ErrAccessDenied.WriteError(w)
		return
	}

	id := r.PathValue("id")
	if err := h.IdentityService.ApproveRecruiter(ctx, id); err != nil {
		writeServiceError(w, r, "approve recruiter", err)
		return
	}
	slogx.FromContext(ctx).Info("recruiter approved", "recruiter_id", id)
	w.WriteHeader(http.StatusNoContent)
}
