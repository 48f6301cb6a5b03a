package matchhandlers

import (
	"net/http"
	"time"

	authhandlers "github.com/funfirstplay/matchup/app/modules/auth/infrastructure/handlers"
	matchdomain "github.com/funfirstplay/matchup/app/modules/match/domain"
	"github.com/funfirstplay/matchup/app/shared/apperrors"
	"github.com/funfirstplay/matchup/app/shared/httpapi"
)

// CreateMatch handles POST /api/matches.
func (h *MatchHandlers) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "CreateMatch")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req matchdomain.CreateMatchRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	match, err := h.service.CreateMatch(ctx, caller.UserID, req)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusCreated, "Match created successfully", map[string]any{"match": match})
}

// ListMatches handles GET /api/matches.
func (h *MatchHandlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "ListMatches")
	defer span.End()

	filter, err := parseMatchFilter(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	matches, err := h.service.ListMatches(ctx, filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	if matches == nil {
		matches = []matchdomain.Match{}
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Matches retrieved successfully", map[string]any{"matches": matches})
}

// ListMyMatches handles GET /api/matches/mine.
func (h *MatchHandlers) ListMyMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "ListMyMatches")
	defer span.End()

	caller, ok := authhandlers.RequireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var status *matchdomain.PlayerStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := matchdomain.PlayerStatus(raw)
		status = &s
	}

	matches, err := h.service.ListUserMatches(ctx, caller.UserID, status)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	if matches == nil {
		matches = []matchdomain.UserMatch{}
	}

	httpapi.WriteSuccess(w, http.StatusOK, "User matches retrieved successfully", map[string]any{"matches": matches})
}

// GetMatch handles GET /api/matches/{matchID}.
func (h *MatchHandlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "GetMatch")
	defer span.End()

	matchID, err := httpapi.URLParamInt64(r, "matchID")
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	details, err := h.service.GetMatch(ctx, matchID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Match retrieved successfully", map[string]any{
		"match":   details.Match,
		"players": details.Players,
	})
}

// UpdateMatch handles PUT /api/matches/{matchID}.
func (h *MatchHandlers) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "UpdateMatch")
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

	var req matchdomain.UpdateMatchRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	match, err := h.service.UpdateMatch(ctx, matchID, caller.UserID, req)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Match updated successfully", map[string]any{"match": match})
}

// DeleteMatch handles DELETE /api/matches/{matchID}.
func (h *MatchHandlers) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "DeleteMatch")
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

	if err := h.service.DeleteMatch(ctx, matchID, caller.UserID); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	httpapi.WriteSuccess(w, http.StatusOK, "Match deleted successfully", nil)
}

// parseMatchFilter reads the list filters from the query string.
func parseMatchFilter(r *http.Request) (matchdomain.MatchFilter, error) {
	var filter matchdomain.MatchFilter
	var err error

	if filter.SportID, err = httpapi.QueryInt64(r, "sport_id"); err != nil {
		return filter, err
	}
	if filter.SkillLevelID, err = httpapi.QueryInt64(r, "skill_level_id"); err != nil {
		return filter, err
	}
	if filter.Limit, err = httpapi.QueryInt(r, "limit", matchdomain.DefaultListLimit); err != nil {
		return filter, err
	}
	if filter.Offset, err = httpapi.QueryInt(r, "offset", 0); err != nil {
		return filter, err
	}

	q := r.URL.Query()
	if raw := q.Get("status"); raw != "" {
		status := matchdomain.MatchStatus(raw)
		if !status.IsValid() {
			return filter, apperrors.Validation("Invalid match status")
		}
		filter.Status = &status
	}
	if filter.FromDate, err = queryDate(q.Get("from_date"), "from_date"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = queryDate(q.Get("to_date"), "to_date"); err != nil {
		return filter, err
	}

	return filter, nil
}

var queryDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func queryDate(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperrors.Validation("Invalid " + name)
}
