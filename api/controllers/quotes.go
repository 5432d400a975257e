package controllers

import (
	"net/http"

	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	"github.com/SttarkMax/sistema/internal/exports"
	"github.com/SttarkMax/sistema/internal/quotes"
	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
)

// QuotesList supports ?status=, ?customerId= and ?salesperson= filters.
func QuotesList(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := quotes.Filter{
			CustomerID:  q.Get("customerId"),
			Salesperson: q.Get("salesperson"),
		}
		if raw := q.Get("status"); raw != "" {
			status, err := enums.ParseQuoteStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").WithDetails(map[string]string{"field": "status"}))
				return
			}
			filter.Status = status
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func QuotesGet(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuotesCreate issues a new quote authored by the session user.
func QuotesCreate(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		console := middleware.ConsoleFromContext(r.Context())
		user := console.User()
		if user == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Faça login para continuar."))
			return
		}

		var body quotes.Input
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.ClientName = validators.SanitizeString(body.ClientName, 200)

		author := quotes.Author{User: *user, Company: console.Gate.Snapshot().Company}
		if author.Company == nil && console.Record != nil {
			author.Company = console.Record.Company
		}

		quote, err := svc.Create(r.Context(), author, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithField(r.Context(), "quote_number", quote.QuoteNumber), "quote.created")
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

func QuotesUpdate(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body quotes.Input
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.ClientName = validators.SanitizeString(body.ClientName, 200)

		quote, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuotesTransition moves a quote through its lifecycle.
func QuotesTransition(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body statusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := enums.ParseQuoteStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote status").WithDetails(map[string]string{"field": "status"}))
			return
		}

		quote, err := svc.Transition(r.Context(), id, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuotesPDF renders the printable quote.
func QuotesPDF(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doc, err := exports.QuotePDF(*quote)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteFile(w, exports.ContentTypePDF, exports.QuoteFilename(*quote), doc)
	}
}
