// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// notFoundOnWrongMethod is installed as the router's MethodNotAllowed
// handler. A request whose method has no handler for the path gets 404
// instead of chi's 405, so probing with other methods does not reveal
// which admin paths exist.
func notFoundOnWrongMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		router.ServeHTTP(w, r)
	}
}
