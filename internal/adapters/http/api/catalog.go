package api

import (
	"net/http"
)

type reloadResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

// CatalogHandler exposes catalog administration.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleReload handles POST /catalog/reload. The previous catalog stays in
// place when the file cannot be loaded.
func (h *CatalogHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.ReloadCatalog(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, "api.catalog_reload", err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded", Items: n})
}
