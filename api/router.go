package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/orders"
	"github.com/raushankrgupta/skinbox/session"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/raushankrgupta/skinbox/utils"
	"github.com/rs/zerolog"
)

type contextKey string

const identityKey contextKey = "identity"

// BoxGenerator runs the questionnaire pipeline
type BoxGenerator interface {
	Generate(ctx context.Context, user models.SessionIdentity, profile models.DiagnosticProfile) (models.Box, error)
}

// BoxTransitioner changes box status
type BoxTransitioner interface {
	Transition(ctx context.Context, boxID string, status models.BoxStatus) (models.Box, error)
}

// OrderSubmitter hands a box off to the manager
type OrderSubmitter interface {
	Submit(ctx context.Context, box models.Box, contact models.OrderContact) (orders.Order, error)
}

// CatalogImporter drafts a catalog item from a shop page
type CatalogImporter interface {
	Import(ctx context.Context, url string, category models.Category) (models.CatalogItem, error)
}

// Tokens issues and checks bearer tokens
type Tokens interface {
	GenerateToken(identity models.SessionIdentity) (string, error)
	ValidateToken(token string) (models.SessionIdentity, error)
}

// Deps are the collaborators the HTTP surface needs. Importer and Presigner may be nil.
type Deps struct {
	Gateway   storage.Gateway
	Boxes     BoxGenerator
	Statuses  BoxTransitioner
	Orders    OrderSubmitter
	Importer  CatalogImporter
	Auth      session.Authenticator
	Tokens    Tokens
	Presigner utils.Presigner
	Logger    zerolog.Logger
}

type Handler struct {
	Deps
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{Deps: d}
	r := chi.NewRouter()
	r.Use(utils.LatencyMiddleware(d.Logger))
	r.Use(cors)

	r.Post("/auth/login", h.handleLogin)
	r.Get("/catalog", h.handleListCatalog)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/auth/me", h.handleMe)

		r.Post("/boxes", h.handleGenerateBox)
		r.Get("/boxes", h.handleListBoxes)
		r.Get("/boxes/{id}", h.handleGetBox)
		r.Get("/boxes/{id}/photo", h.handleBoxPhoto)
		r.Post("/boxes/{id}/order", h.handleOrderBox)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)

			r.Post("/catalog", h.handleCreateCatalogItem)
			r.Put("/catalog/{id}", h.handleUpdateCatalogItem)
			r.Delete("/catalog/{id}", h.handleDeleteCatalogItem)
			r.Post("/catalog/import", h.handleImportCatalogItem)

			r.Get("/admin/boxes", h.handleListAllBoxes)
			r.Post("/admin/boxes/{id}/status", h.handleSetBoxStatus)
		})
	})

	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			utils.RespondError(w, r, "unauthorized", http.StatusUnauthorized, nil)
			return
		}
		identity, err := h.Tokens.ValidateToken(strings.TrimSpace(authHeader[7:]))
		if err != nil {
			utils.RespondError(w, r, "unauthorized", http.StatusUnauthorized, err)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		ctx = zerolog.Ctx(ctx).With().Str("user_id", identity.ID).Logger().WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r.Context()).IsAdmin() {
			utils.RespondError(w, r, "forbidden", http.StatusForbidden, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(ctx context.Context) models.SessionIdentity {
	identity, _ := ctx.Value(identityKey).(models.SessionIdentity)
	return identity
}
