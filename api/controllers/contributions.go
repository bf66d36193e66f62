package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhakalabs/storefront-gateway/api/responses"
	"github.com/nhakalabs/storefront-gateway/api/validators"
	"github.com/nhakalabs/storefront-gateway/internal/contributions"
	"github.com/nhakalabs/storefront-gateway/pkg/commerce"
	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
)

const (
	// maxUploadBytes bounds media contribution uploads at 32 MiB.
	maxUploadBytes = 32 << 20

	maxTextContentLen     = 10000
	maxContributorNameLen = 120
)

// ContributionList pages the contributions of one memorial.
func ContributionList(svc contributions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contribution service unavailable"))
			return
		}

		params, err := validators.ParseListParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		envelope, err := svc.List(r.Context(), r.URL.Query().Get("memorialId"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, envelope)
	}
}

type createContributionRequest struct {
	MemorialID      string `json:"memorialId" validate:"required"`
	Type            string `json:"type" validate:"required"`
	TextContent     string `json:"textContent"`
	ContributorName string `json:"contributorName"`
}

// ContributionCreate posts a text contribution to a memorial.
func ContributionCreate(svc contributions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contribution service unavailable"))
			return
		}

		var body createContributionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), commerce.CreateContributionInput{
			MemorialID:      body.MemorialID,
			Type:            commerce.ContributionType(body.Type),
			TextContent:     validators.SanitizeString(body.TextContent, maxTextContentLen),
			ContributorName: validators.SanitizeString(body.ContributorName, maxContributorNameLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ContributionUpload accepts a multipart media contribution and streams the
// file through to the commerce API.
func ContributionUpload(svc contributions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contribution service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart request"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file part is required"))
			return
		}
		defer file.Close()

		created, err := svc.Upload(r.Context(), contributions.UploadInput{
			MemorialID:      r.FormValue("memorialId"),
			Type:            commerce.ContributionType(r.FormValue("type")),
			ContributorName: validators.SanitizeString(r.FormValue("contributorName"), maxContributorNameLen),
			FileName:        header.Filename,
			File:            file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

type visibilityRequest struct {
	IsHidden *bool `json:"isHidden" validate:"required"`
}

// ContributionSetVisibility toggles moderation on a contribution.
func ContributionSetVisibility(svc contributions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contribution service unavailable"))
			return
		}

		var body visibilityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetVisibility(r.Context(), chi.URLParam(r, "contributionID"), *body.IsHidden)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
