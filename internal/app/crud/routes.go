package crud

import (
	"github.com/dalemusser/edupath/internal/app/system/auth"
	"github.com/dalemusser/edupath/internal/app/system/schema"
	"github.com/go-chi/chi/v5"
)

// Access lists the roles allowed to read, write and delete.
type Access struct {
	Read   []string
	Write  []string
	Delete []string
}

// Routes mounts the standard resource routes:
//
//	GET    /           list
//	POST   /           create
//	POST   /reorder    reorder (resources with an order field)
//	GET    /{id}       get
//	PUT    /{id}       update
//	PATCH  /{id}       update
//	DELETE /{id}       delete
//
// Example from bootstrap:
//
//	r.Mount("/api/blogs", crud.Routes(blogsHandler, sm, contentAccess))
func Routes[T any, I schema.Validator](h *Handler[T, I], sm *auth.SessionManager, access Access) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	read := sm.RequireRole(access.Read...)
	write := sm.RequireRole(access.Write...)
	del := sm.RequireRole(access.Delete...)

	r.With(read).Get("/", h.ServeList)
	r.With(write).Post("/", h.HandleCreate)
	if h.Svc.res.OrderField != "" {
		r.With(write).Post("/reorder", h.HandleReorder)
	}
	r.With(read).Get("/{id}", h.ServeGet)
	r.With(write).Put("/{id}", h.HandleUpdate)
	r.With(write).Patch("/{id}", h.HandleUpdate)
	r.With(del).Delete("/{id}", h.HandleDelete)
	return r
}
