package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/BlufyTeam/contacts/docs" //nolint:revive,nolintlint
)

// NewRouter wires the public directory surface and the authenticated
// management surface. uploadDir is served verbatim under uploadPrefix so
// stored files resolve at the URLs the upload endpoint hands out.
func NewRouter(h *Handler, mw *Middleware, uploadPrefix, uploadDir string) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors, mw.WithIP)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", h.Health)
			r.Get("/swagger/*", httpSwagger.WrapHandler)

			r.Post("/login", h.Login)

			r.Get("/organizations", h.ListOrganizations)
			r.Get("/contacts", h.ListContacts)
			r.Get("/documents", h.ListDocuments)

			r.Post("/upload", h.Upload)
			r.Get("/export-contacts", h.ExportContacts)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Post("/organizations", h.CreateOrganization)
			r.Put("/organizations/{id}", h.UpdateOrganization)
			r.Delete("/organizations/{id}", h.DeleteOrganization)

			r.Post("/contacts", h.CreateContact)
			r.Put("/contacts/{id}", h.UpdateContact)
			r.Delete("/contacts/{id}", h.DeleteContact)

			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Put("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)

			r.Get("/roles", h.ListRoles)
			r.Get("/roles/{id}", h.GetRole)
			r.Post("/roles", h.CreateRole)
			r.Put("/roles/{id}", h.UpdateRole)
			r.Delete("/roles/{id}", h.DeleteRole)

			r.Get("/permissions", h.ListPermissions)
			r.Get("/permissions/{id}", h.GetPermission)
			r.Post("/permissions", h.CreatePermission)
			r.Put("/permissions/{id}", h.UpdatePermission)
			r.Delete("/permissions/{id}", h.DeletePermission)

			r.Post("/documents", h.CreateDocument)
			r.Delete("/documents/{id}", h.DeleteDocument)

			r.Post("/import-contacts", h.ImportContacts)
		})
	})

	router.Handle(uploadPrefix+"/*", http.StripPrefix(uploadPrefix+"/",
		http.FileServer(http.Dir(uploadDir))))

	return router
}
