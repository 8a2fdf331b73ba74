package controllers

import (
	"net/http"

	"github.com/angelmondragon/scentshop/api/responses"
	"github.com/angelmondragon/scentshop/api/validators"
	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/pkg/logger"
)

const (
	maxSearchLen     = 512
	noResultsMessage = "No perfumes found matching your search."
)

type catalogResponse struct {
	Items   []catalog.RankedItem `json:"items"`
	Terms   []string             `json:"terms"`
	Count   int                  `json:"count"`
	Message string               `json:"message,omitempty"`
}

// ListCatalog runs the search in ?q= and returns the ranked catalog.
func ListCatalog(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchLen)
		items, err := svc.Search(r.Context(), text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := catalogResponse{Items: items, Terms: catalog.ParseTerms(text), Count: len(items)}
		if len(items) == 0 {
			resp.Message = noResultsMessage
		}
		responses.WriteSuccess(w, resp)
	}
}
