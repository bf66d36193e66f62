package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhakalabs/storefront-gateway/api/responses"
	"github.com/nhakalabs/storefront-gateway/api/validators"
	"github.com/nhakalabs/storefront-gateway/internal/memorials"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

func MemorialGet(svc memorials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memorial service unavailable"))
			return
		}

		memorial, err := svc.Get(r.Context(), chi.URLParam(r, "memorialID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, memorial)
	}
}

// MemorialPublicGet serves the visitor-facing memorial page. It is mounted
// outside the authenticated group and strips hidden contributions.
func MemorialPublicGet(svc memorials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memorial service unavailable"))
			return
		}

		memorial, err := svc.GetPublic(r.Context(), chi.URLParam(r, "memorialID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, memorial)
	}
}

type memorialUpdateRequest struct {
	Title          string                   `json:"title"`
	IsPublic       *bool                    `json:"isPublic"`
	Summary        string                   `json:"summary"`
	DeceasedPerson *commerce.DeceasedPerson `json:"deceasedPerson"`
}

func MemorialConfigure(svc memorials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "memorial service unavailable"))
			return
		}

		var body memorialUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Configure(r.Context(), chi.URLParam(r, "memorialID"), commerce.MemorialUpdate{
			Title:          body.Title,
			IsPublic:       body.IsPublic,
			Summary:        body.Summary,
			DeceasedPerson: body.DeceasedPerson,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
