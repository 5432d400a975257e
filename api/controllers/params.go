package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
)

// statusRequest is the body of every status change endpoint.
type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func pathParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" is required").WithDetails(map[string]string{"field": name})
	}
	return value, nil
}
