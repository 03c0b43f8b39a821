// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/spellbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/spellbook/internal/platform/request"
	"github.com/taibuivan/spellbook/internal/platform/respond"
	"github.com/taibuivan/spellbook/internal/platform/sec"
	"github.com/taibuivan/spellbook/pkg/pagination"
	"github.com/taibuivan/spellbook/pkg/query"
	"github.com/taibuivan/spellbook/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for spell search and maintenance.
type Handler struct {
	service *Service
}

// NewHandler constructs a new spell [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the spell endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): search, category tables and detail.
//   - Management (Restricted): requires [sec.RoleEditor] or above.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listSpells)
	router.Post("/search", handler.searchSpells)
	router.Get("/categories", handler.listCategories)
	router.Get("/{index}", handler.getSpell)

	// ## Catalogue Management
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))
		editor.Post("/", handler.createSpell)
	})

	return router
}

// # Search Endpoints

/*
GET /api/v1/spells.

Description: Searches the catalogue. List parameters accept repeated keys or
comma separated values. Malformed values are ignored.

Request:
  - name: string (Case-insensitive substring)
  - levels: []int (0-9)
  - classes: []string (e.g. wizard, cleric)
  - ritual, concentration, has_higher_level, has_material: bool
  - components: []string (V, S, M)
  - range_categories: []string (self, touch, short...)
  - duration_categories: []string (instantaneous, up_to_1_minute...)
  - casting_time_categories: []string (1_action, 1_reaction...)
  - page, limit: int

Response:
  - 200: []Spell: Paginated list of spells
*/
func (handler *Handler) listSpells(writer http.ResponseWriter, request *http.Request) {
	filter := FilterFromQuery(request.URL.Query())
	handler.respondSearch(writer, request, filter)
}

/*
POST /api/v1/spells/search.

Description: Same search as the GET endpoint with the [Filter] sent as JSON.
Pagination still comes from the query string.

Request:
  - Body: Filter

Response:
  - 200: []Spell: Paginated list of spells
  - 400: ErrInvalidJSON
*/
func (handler *Handler) searchSpells(writer http.ResponseWriter, request *http.Request) {
	var filter Filter
	if err := requestutil.DecodeJSON(request, &filter); err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.respondSearch(writer, request, &filter)
}

func (handler *Handler) respondSearch(writer http.ResponseWriter, request *http.Request, filter *Filter) {
	paginationParams := pagination.FromRequest(request)

	spells, total, err := handler.service.ListSpells(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if spells == nil {
		spells = []*Spell{}
	}

	respond.Paginated(writer, spells, paginationParams.Meta(total))
}

/*
GET /api/v1/spells/categories.

Description: Returns the category tables used to resolve range, duration and
casting time buckets.

Response:
  - 200: map[dimension]map[key]TableEntry
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	tables := make(map[Dimension]map[string]TableEntry, len(Dimensions))
	for _, dimension := range Dimensions {
		tables[dimension] = Table(dimension)
	}
	respond.OK(writer, tables)
}

// # Detail Endpoints

/*
GET /api/v1/spells/{index}.

Response:
  - 200: Spell
  - 404: ErrSpellNotFound
*/
func (handler *Handler) getSpell(writer http.ResponseWriter, request *http.Request) {
	spell, err := handler.service.GetSpell(request.Context(), requestutil.Param(request, "index"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, spell)
}

/*
POST /api/v1/spells.

Description: Creates a spell or replaces the one sharing its index.

Request:
  - Body: Spell

Response:
  - 201: Spell
  - 400: Validation errors
  - 401/403: Missing or insufficient role
*/
func (handler *Handler) createSpell(writer http.ResponseWriter, request *http.Request) {
	var spell Spell
	if err := requestutil.DecodeJSON(request, &spell); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateSpell(request.Context(), &spell); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, spell)
}

// # Query Parsing

// FilterFromQuery builds a [Filter] from URL query parameters.
func FilterFromQuery(values url.Values) *Filter {
	return &Filter{
		Name:                  values.Get("name"),
		Levels:                query.IntSlice(values["levels"]),
		Classes:               query.List(values["classes"]),
		Ritual:                query.Bool(values.Get("ritual")),
		Concentration:         query.Bool(values.Get("concentration")),
		HasHigherLevel:        query.Bool(values.Get("has_higher_level")),
		Components:            query.List(values["components"]),
		HasMaterial:           query.Bool(values.Get("has_material")),
		RangeCategories:       slice.As[RangeCategory](query.List(values["range_categories"])),
		DurationCategories:    slice.As[DurationCategory](query.List(values["duration_categories"])),
		CastingTimeCategories: slice.As[CastingTimeCategory](query.List(values["casting_time_categories"])),
	}
}
