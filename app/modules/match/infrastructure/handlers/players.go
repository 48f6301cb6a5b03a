package matchhandlers

import (
	"net/http"

	authhandlers "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/handlers"
	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	"github.com/funfirstplay/matchup/app/shared/httpapi"
)

// InvitePlayers handles POST /api/matches/{matchID}/invite.
func (h *MatchHandlers) InvitePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "InvitePlayers")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}
	matchID, err := httpapi.URLParamInt64(r, "matchID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	var req matchdomain.InvitePlayersRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.InvitePlayers(ctx, matchID, caller.UserID, req.PlayerIDs); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Players invited successfully", nil)
}

// RespondToInvitation handles POST /api/matches/{matchID}/respond.
func (h *MatchHandlers) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "RespondToInvitation")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}
	matchID, err := httpapi.URLParamInt64(r, "matchID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	var req matchdomain.RespondRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.RespondToInvitation(ctx, matchID, caller.UserID, req.Response, req.Comment); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Response recorded successfully", nil)
}

// GetResponseHistory handles GET /api/matches/{matchID}/players/{userID}/responses.
func (h *MatchHandlers) GetResponseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "GetResponseHistory")
	defer span.End()

	if _, ok := authhandlers.RequireCaller(w, r, h.logger); !ok {
		return
	}
	matchID, err := httpapi.URLParamInt64(r, "matchID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	userID, err := httpapi.URLParamInt64(r, "userID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	responses, err := h.service.GetResponseHistory(ctx, matchID, userID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	if responses == nil {
		responses = []matchdomain.PlayerResponse{}
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Response history retrieved successfully", map[string]any{"responses": responses})
}
