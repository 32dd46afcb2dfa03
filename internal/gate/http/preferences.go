package http

import (
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
)

type PreferenceHandler struct {
	PreferenceService *service.PreferenceService
}

func toPreferenceResponse(p domain.Preference) gatesdk.PreferenceResponse {
	resp := gatesdk.PreferenceResponse{Key: p.Key, Value: p.Value}
	if !p.UpdatedAt.IsZero() {
		at := p.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}

// HandleGet handles GET /v1/preferences/{key}
//
//	@Summary	Read a preference
//	@Tags		Preferences
//	@Security	SessionCookie
//	@Produce	json
//	@Param		key	path		string	true	"Preference key"	Enums(mfa_banner_dismissed)
//	@Success	200	{object}	gatesdk.PreferenceResponse
//	@Failure	404	{object}	gatesdk.APIError	"Unknown preference"
//	@Router		/v1/preferences/{key} [get].
func (h *PreferenceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := subjectFrom(ctx).Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}

	p, err := h.PreferenceService.Get(ctx, sess.UserID, r.PathValue("key"))
	if err != nil {
		writeServiceError(w, r, "get preference", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreferenceResponse(p))
}

// HandlePut handles PUT /v1/preferences/{key}
//
//	@Summary	Write a preference
//	@Tags		Preferences
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		key		path		string						true	"Preference key"	Enums(mfa_banner_dismissed)
//	@Param		request	body		gatesdk.PreferenceRequest	true	"Value"
//	@Success	200		{object}	gatesdk.PreferenceResponse
//	@Failure	404		{object}	gatesdk.APIError	"Unknown preference"
//	@Router		/v1/preferences/{key} [put].
func (h *PreferenceHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := subjectFrom(ctx).Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}

	var req gatesdk.PreferenceRequest
	if err := bind(w, r, &req, func(v url.Values) { req.Value = v.Get("value") }); err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	p, err := h.PreferenceService.Set(ctx, sess.UserID, r.PathValue("key"), req.Value)
	if err != nil {
		writeServiceError(w, r, "set preference", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPreferenceResponse(p))
}
