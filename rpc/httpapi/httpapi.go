// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package httpapi - read-only HTTP view of the spot collection
//
//   GET /spots?q=&status=   filtered spots
//   GET /spots/{id}         one spot
//   GET /status             transaction status
//   GET /stats              counts per status
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/dashboard"
	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/spot"
	"github.com/bitmark-inc/parkshare/tracker"
)

// Reader - read operations of the store
type Reader interface {
	Spots() []spot.Spot
	Spot(id string) (*spot.Spot, error)
	Status() tracker.Status
}

type handler struct {
	log   *logger.L
	store Reader
}

type errorReply struct {
	Error string `json:"error"`
}

// New - router for the dashboard endpoints
func New(log *logger.L, store Reader) http.Handler {
	h := &handler{
		log:   log,
		store: store,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)

	r.Get("/spots", h.list)
	r.Get("/spots/{id}", h.get)
	r.Get("/status", h.status)
	r.Get("/stats", h.stats)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorReply{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorReply{Error: "method not allowed"})
	})

	return r
}

func (h *handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Debugf("%s %s  status: %d  elapsed: %s", r.Method, r.URL.RequestURI(), ww.Status(), time.Since(start))
	})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spots := dashboard.Filter(h.store.Spots(), q.Get("q"), q.Get("status"))
	writeJSON(w, http.StatusOK, spots)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.store.Spot(id)
	if nil != err {
		if fault.IsErrNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorReply{Error: err.Error()})
			return
		}
		h.log.Errorf("get spot: %q  error: %s", id, err)
		writeJSON(w, http.StatusInternalServerError, errorReply{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (h *handler) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Status())
}

func (h *handler) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dashboard.Summarise(h.store.Spots()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
