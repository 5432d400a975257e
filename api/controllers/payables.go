package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	"github.com/SttarkMax/sistema/internal/exports"
	"github.com/SttarkMax/sistema/internal/payables"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
)

var now = time.Now

const upcomingDays = 7

// PayablesView is the accounts payable screen: entries by due date plus the
// open total and how many unpaid entries are past due or due this week.
type PayablesView struct {
	Entries       []models.AccountsPayableEntry `json:"entries"`
	Outstanding   decimal.Decimal               `json:"outstanding"`
	OverdueCount  int                           `json:"overdueCount"`
	UpcomingCount int                           `json:"upcomingCount"`
}

func payablesView(book *payables.Book) PayablesView {
	today := types.DateOf(now())
	return PayablesView{
		Entries:       book.Entries(),
		Outstanding:   book.Outstanding(),
		OverdueCount:  len(book.Overdue(today)),
		UpcomingCount: len(book.Upcoming(today, upcomingDays)),
	}
}

func PayablesList(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payablesView(book))
	}
}

// PayablesSave creates (POST) or updates (PUT /{entryId}) a single entry.
func PayablesSave(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.AccountsPayableEntry
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

// PayablesPreviewSeries expands a series without saving it.
func PayablesPreviewSeries(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body payables.SeriesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.PreviewSeries(body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func PayablesCreateSeries(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body payables.SeriesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.CreateSeries(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		logg.Info(logg.WithField(r.Context(), "installments", len(entries)), "payables.series_created")
		responses.WriteSuccessStatus(w, http.StatusCreated, entries)
	}
}

// PayablesDeleteSeries removes every installment of a series and returns the updated book.
func PayablesDeleteSeries(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seriesID, err := pathParam(r, "seriesId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		book, err := svc.DeleteSeries(r.Context(), seriesID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payablesView(book))
	}
}

func PayablesDeleteEntry(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		book, err := svc.DeleteEntry(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payablesView(book))
	}
}

func PayablesTogglePaid(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "entryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.TogglePaid(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// PayablesExport downloads the accounts payable list as a workbook.
func PayablesExport(svc payables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doc, err := exports.PayablesWorkbook(book.Entries())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteFile(w, exports.ContentTypeXLSX, "contas-a-pagar.xlsx", doc)
	}
}
