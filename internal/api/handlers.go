package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bestiary-backend/internal/telemetry"
	"bestiary-backend/lib/scrapers/bestiary"
)

const RootMessage = "API funcionando correctamente"

const (
	report_handlers_query_monster = "handlers.query-monster"
	report_handlers_list_monsters = "handlers.list-monsters"
	report_handlers_write         = "handlers.write"
)

// Bestiary is what the handlers need from the scraper.
type Bestiary interface {
	GetMonster(ctx context.Context, name string) (bestiary.Record, error)
	ListMonsters(ctx context.Context) ([]bestiary.Entry, error)
}

// Handlers holds dependencies for the API handlers.
type Handlers struct {
	bestiary Bestiary
	tel      telemetry.API
}

func NewHandlers(b Bestiary, tel telemetry.API) *Handlers {
	return &Handlers{bestiary: b, tel: tel}
}

type rootResponse struct {
	Message string `json:"message"`
}

type queryMonsterRequest struct {
	Name *string `json:"nombre"`
}

type queryMonsterResponse struct {
	Monster bestiary.Record `json:"enemigo"`
}

type listMonstersResponse struct {
	Monsters []bestiary.Entry `json:"enemigos"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Root confirms that the service is up.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, rootResponse{Message: RootMessage})
}

// QueryMonster takes the name from a json body {"nombre": "..."}, or from the
// `nombre` query parameter when the body is empty.
func (h *Handlers) QueryMonster(w http.ResponseWriter, r *http.Request) {
	name, err := readMonsterName(r)
	if err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	record, err := h.bestiary.GetMonster(r.Context(), name)
	if err != nil {
		h.writeError(w, report_handlers_query_monster, err)
		return
	}

	h.writeJSON(w, http.StatusOK, queryMonsterResponse{Monster: record})
}

// ListMonsters lists every monster on the bestiary index.
func (h *Handlers) ListMonsters(w http.ResponseWriter, r *http.Request) {
	entries, err := h.bestiary.ListMonsters(r.Context())
	if err != nil {
		h.writeError(w, report_handlers_list_monsters, err)
		return
	}
	if entries == nil {
		entries = []bestiary.Entry{}
	}

	h.writeJSON(w, http.StatusOK, listMonstersResponse{Monsters: entries})
}

var (
	errInvalidBody = errors.New("invalid request body")
	errMissingName = errors.New("field required: nombre")
)

func readMonsterName(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return "", errInvalidBody
	}

	if len(body) == 0 {
		query := r.URL.Query()
		if !query.Has("nombre") {
			return "", errMissingName
		}
		return query.Get("nombre"), nil
	}

	var req queryMonsterRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		return "", errInvalidBody
	}
	if req.Name == nil {
		return "", errMissingName
	}
	return *req.Name, nil
}

// writeError maps bestiary errors to their status. Those were already reported
// by the client, anything else is reported here.
func (h *Handlers) writeError(w http.ResponseWriter, id string, err error) {
	var bestiaryErr *bestiary.Error
	if !errors.As(err, &bestiaryErr) {
		h.tel.ReportBroken(id, err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
		return
	}

	status := http.StatusInternalServerError
	if bestiaryErr.Kind == bestiary.KindNotFound {
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, errorResponse{Detail: bestiaryErr.Detail})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.tel.ReportWarning(report_handlers_write, err)
	}
}
