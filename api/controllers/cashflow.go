package controllers

import (
	"net/http"

	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	"github.com/SttarkMax/sistema/internal/cashflow"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

// CashflowSummary reads ?from=&to= (YYYY-MM-DD) and ?includePayables=true.
func CashflowSummary(svc cashflow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := validators.ParseQueryDateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includePayables, err := validators.ParseQueryBool(r, "includePayables", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summary(r.Context(), rng, includePayables)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func CashflowSave(svc cashflow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.CashFlowEntry
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if r.Method == http.MethodPut {
			id, err := pathParam(r, "entryId")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			body.ID = id
		}
		body.Description = validators.SanitizeString(body.Description, 200)

		saved, err := svc.Save(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, saved)
	}
}

func CashflowDelete(svc cashflow.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": id})
	}
}
