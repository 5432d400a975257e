package controllers

import (
	"net/http"

	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	"github.com/SttarkMax/sistema/internal/catalog"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

// CatalogListProducts supports ?categoryId= and ?search= filters.
func CatalogListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := catalog.ProductFilter{
			CategoryID: q.Get("categoryId"),
			Search:     validators.SanitizeString(q.Get("search"), 100),
		}
		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// CatalogSaveProduct handles both create (POST) and update (PUT /{productId}).
func CatalogSaveProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.Product
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if r.Method == http.MethodPut {
			id, err := pathParam(r, "productId")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			body.ID = id
		}

		saved, err := svc.SaveProduct(r.Context(), body)
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

func CatalogDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": id})
	}
}

func CatalogListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

func CatalogSaveCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.Category
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if r.Method == http.MethodPut {
			id, err := pathParam(r, "categoryId")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			body.ID = id
		}

		saved, err := svc.SaveCategory(r.Context(), body)
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

func CatalogDeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": id})
	}
}
