package controllers

import (
	"context"
	"net/http"

	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

type companyAPI interface {
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	SaveCompanyInfo(ctx context.Context, info models.CompanyInfo) (models.CompanyInfo, error)
}

type companyCache interface {
	SaveCompany(ctx context.Context, console *middleware.Console, info *models.CompanyInfo)
}

// CompanyGet fetches the company profile from the backend and caches it on the session.
func CompanyGet(api companyAPI, cache companyCache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company api unavailable"))
			return
		}

		info, err := api.GetCompanyInfo(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if info == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "company info not configured"))
			return
		}
		if cache != nil {
			cache.SaveCompany(r.Context(), middleware.ConsoleFromContext(r.Context()), info)
		}
		responses.WriteSuccess(w, info)
	}
}

// CompanySave updates the company profile. Quotes already issued keep their snapshot.
func CompanySave(api companyAPI, cache companyCache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company api unavailable"))
			return
		}

		var body models.CompanyInfo
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Name = validators.SanitizeString(body.Name, 200)

		saved, err := api.SaveCompanyInfo(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if cache != nil {
			cache.SaveCompany(r.Context(), middleware.ConsoleFromContext(r.Context()), &saved)
		}
		responses.WriteSuccess(w, saved)
	}
}
