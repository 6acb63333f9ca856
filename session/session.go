package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/storage"
)

// Authenticator decides who an email belongs to and which role it gets
type Authenticator interface {
	Authenticate(ctx context.Context, email string) (models.SessionIdentity, error)
}

// EmailConvention grants the admin role to any email containing Marker.
// It is a placeholder for a real identity provider, not a security boundary.
type EmailConvention struct {
	Marker string
}

// DefaultAdminMarker is the substring that marks an admin email
const DefaultAdminMarker = "admin"

// Authenticate derives the identity from the email string alone
func (c EmailConvention) Authenticate(_ context.Context, email string) (models.SessionIdentity, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.SessionIdentity{}, fmt.Errorf("email is required")
	}

	marker := c.Marker
	if marker == "" {
		marker = DefaultAdminMarker
	}
	name, _, _ := strings.Cut(email, "@")

	identity := models.SessionIdentity{ID: email, Email: email, Name: name, Role: models.RoleUser}
	if strings.Contains(email, marker) {
		identity.ID = "admin-id"
		identity.Role = models.RoleAdmin
	}
	return identity, nil
}

// Manager keeps the current session in the persistence gateway
type Manager struct {
	auth    Authenticator
	gateway storage.Gateway
}

// NewManager creates a Manager
func NewManager(auth Authenticator, gateway storage.Gateway) *Manager {
	return &Manager{auth: auth, gateway: gateway}
}

// Login authenticates email and stores the resulting identity as the current session
func (m *Manager) Login(ctx context.Context, email string) (models.SessionIdentity, error) {
	identity, err := m.auth.Authenticate(ctx, email)
	if err != nil {
		return models.SessionIdentity{}, err
	}
	if err := m.gateway.SetSession(ctx, identity); err != nil {
		return models.SessionIdentity{}, fmt.Errorf("store session: %w", err)
	}
	return identity, nil
}

// Current returns the logged-in identity or nil
func (m *Manager) Current(ctx context.Context) (*models.SessionIdentity, error) {
	return m.gateway.GetSession(ctx)
}

// Logout clears the current session
func (m *Manager) Logout(ctx context.Context) error {
	return m.gateway.ClearSession(ctx)
}
