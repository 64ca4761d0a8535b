package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathParam binds the chi URL parameter name into dest using the OpenAPI
// "simple" style. On failure it writes a 400 and returns false.
func pathParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, paramBody("invalid format for parameter "+name+": "+err.Error()))
		return false
	}
	return true
}

// queryParam binds an optional form-style query parameter into dest.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		writeJSON(w, http.StatusBadRequest, paramBody("invalid format for parameter "+name+": "+err.Error()))
		return false
	}
	return true
}
