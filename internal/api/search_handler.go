package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CoffeeBeansLabs/allocate/internal/search"
	"github.com/CoffeeBeansLabs/allocate/internal/storage"
)

// TalentSearchHandler serves talent recommendations. GET derives the
// search criteria from a stored project position; POST takes explicit
// criteria (quick search).
// @Summary Search talents
// @Description Rank candidates against staffing criteria, either derived from a position (GET) or given explicitly (POST)
// @Tags search
// @Accept json
// @Produce json
// @Param position query int false "Position id (GET)"
// @Param request body talentSearchRequest false "Search criteria (POST)"
// @Success 200 {object} talentSearchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search/talents [get]
func (a *API) TalentSearchHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.positionSearch(w, r)
	case http.MethodPost:
		a.quickSearch(w, r)
	default:
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *API) positionSearch(w http.ResponseWriter, r *http.Request) {
	params, err := parsePositionSearchParams(r.URL.Query())
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pos, err := a.db.GetPosition(r.Context(), params.PositionID)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, http.StatusNotFound, "position not found")
		return
	}
	if err != nil {
		a.log.Error().Err(err).Int64("position", params.PositionID).Msg("loading position")
		a.writeError(w, http.StatusInternalServerError, "search error")
		return
	}

	req := search.RequestFromPosition(*pos)
	req.Search = params.Search
	req.Locations = params.Locations
	req.RelatedSuggestions = params.RelatedSuggestions

	scored, err := a.engine.Search(r.Context(), req)
	if err != nil {
		a.respondSearchError(w, err)
		return
	}

	page := paginate(scored, params.Page, params.Size)
	talents, err := a.buildTalentPage(r.Context(), page, req.SkillIDs,
		params.ResponseDateStart, params.ResponseDateEnd)
	if err != nil {
		a.log.Error().Err(err).Msg("enriching talent page")
		a.writeError(w, http.StatusInternalServerError, "search error")
		return
	}

	a.writeJSON(w, http.StatusOK, talentSearchResponse{
		Criteria: pos,
		Talents:  talents,
		Count:    len(scored),
	})
}

func (a *API) quickSearch(w http.ResponseWriter, r *http.Request) {
	body := talentSearchRequest{Page: defaultPageNumber, Size: defaultPageSize}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req, err := body.toStaffingRequest()
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respStart, respEnd, err := body.responseWindow()
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	scored, err := a.engine.Search(r.Context(), req)
	if err != nil {
		a.respondSearchError(w, err)
		return
	}

	page := paginate(scored, body.Page, body.Size)
	talents, err := a.buildTalentPage(r.Context(), page, req.SkillIDs, respStart, respEnd)
	if err != nil {
		a.log.Error().Err(err).Msg("enriching talent page")
		a.writeError(w, http.StatusInternalServerError, "search error")
		return
	}

	a.writeJSON(w, http.StatusOK, talentSearchResponse{
		Criteria: body,
		Talents:  talents,
		Count:    len(scored),
	})
}

func (a *API) respondSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, search.ErrInvalidWindow) ||
		errors.Is(err, search.ErrInvalidExperience) ||
		errors.Is(err, search.ErrInvalidUtilization) {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.log.Error().Err(err).Msg("talent search failed")
	a.writeError(w, http.StatusInternalServerError, "search error")
}

type universalSearchResponse struct {
	Users    []storage.NamedRef `json:"users"`
	Clients  []storage.NamedRef `json:"clients"`
	Projects []storage.NamedRef `json:"projects"`
}

// UniversalSearchHandler looks a name up across users, clients and projects.
// @Summary Universal search
// @Description Case-insensitive name lookup across users, clients and projects
// @Tags search
// @Produce json
// @Param search query string true "Name fragment"
// @Success 200 {object} universalSearchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search/universal [get]
func (a *API) UniversalSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query().Get("search")
	if query == "" {
		a.writeError(w, http.StatusBadRequest, "search is required")
		return
	}

	users, err := a.db.SearchUsersByName(r.Context(), query)
	if err != nil {
		a.failUniversalSearch(w, err)
		return
	}
	clients, err := a.db.SearchClientsByName(r.Context(), query)
	if err != nil {
		a.failUniversalSearch(w, err)
		return
	}
	projects, err := a.db.SearchProjectsByName(r.Context(), query)
	if err != nil {
		a.failUniversalSearch(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, universalSearchResponse{
		Users:    orEmptyRefs(users),
		Clients:  orEmptyRefs(clients),
		Projects: orEmptyRefs(projects),
	})
}

func (a *API) failUniversalSearch(w http.ResponseWriter, err error) {
	a.log.Error().Err(err).Msg("universal search failed")
	a.writeError(w, http.StatusInternalServerError, "search error")
}

func orEmptyRefs(refs []storage.NamedRef) []storage.NamedRef {
	if refs == nil {
		return []storage.NamedRef{}
	}
	return refs
}
