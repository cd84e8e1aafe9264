// Package clients is the client registry: the customers that pipeline
// cards are opened for.
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/funil/internal/database"
	"github.com/thenoetrevino/funil/internal/models"
)

const maxNameLength = 255

// Service defines all client-related business operations
type Service interface {
	// Read operations
	ListClients(ctx context.Context, query string) ([]*models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)

	// Write operations
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	// Seed adds sample clients to an empty registry and returns how many were added
	Seed(ctx context.Context) (int, error)
}

// CreateClientRequest encapsulates data for registering a client
type CreateClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Document      string `json:"cpf_cnpj"`
	Address       string `json:"address"`
	InsuranceType string `json:"insurance_type"`
	Notes         string `json:"notes"`
}

// UpdateClientRequest encapsulates data for editing a client.
// Nil fields are left unchanged.
type UpdateClientRequest struct {
	ID            int64   `json:"-"`
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Document      *string `json:"cpf_cnpj,omitempty"`
	Address       *string `json:"address,omitempty"`
	InsuranceType *string `json:"insurance_type,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        *string `json:"status,omitempty"`
}

type service struct {
	repo database.ClientRepository
}

// NewService creates a new client service
func NewService(repo database.ClientRepository) Service {
	return &service{repo: repo}
}

func (s *service) ListClients(ctx context.Context, query string) ([]*models.Client, error) {
	return s.repo.ListClients(ctx, query)
}

func (s *service) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidClientID, id)
	}
	return s.repo.GetClient(ctx, id)
}

// CreateClient validates and normalizes the request, then registers the client
func (s *service) CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	c := &models.Client{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Document:      req.Document,
		Address:       req.Address,
		InsuranceType: req.InsuranceType,
		Notes:         req.Notes,
		Status:        models.ClientActive,
	}
	if err := normalize(c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	slog.Debug("client registered", "client_id", c.ID)
	return c, nil
}

// UpdateClient applies the non-nil fields of req
func (s *service) UpdateClient(ctx context.Context, req UpdateClientRequest) (*models.Client, error) {
	c, err := s.GetClient(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&c.Name, req.Name)
	apply(&c.Email, req.Email)
	apply(&c.Phone, req.Phone)
	apply(&c.Document, req.Document)
	apply(&c.Address, req.Address)
	apply(&c.InsuranceType, req.InsuranceType)
	apply(&c.Notes, req.Notes)
	apply(&c.Status, req.Status)

	if err := normalize(c); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteClient(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", models.ErrInvalidClientID, id)
	}
	return s.repo.DeleteClient(ctx, id)
}

func (s *service) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.ListClients(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	samples := sampleClients()
	for i, req := range samples {
		if _, err := s.CreateClient(ctx, req); err != nil {
			return i, fmt.Errorf("failed to seed client %q: %w", req.Name, err)
		}
	}
	return len(samples), nil
}

// normalize trims every field, keeps only the digits of the document
// and validates the result
func normalize(c *models.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.InsuranceType = strings.TrimSpace(c.InsuranceType)
	c.Notes = strings.TrimSpace(c.Notes)
	c.Document = digitsOnly(c.Document)

	if c.Name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(c.Name) > maxNameLength {
		return ErrNameTooLong
	}
	if c.Email != "" {
		addr, err := mail.ParseAddress(c.Email)
		if err != nil || addr.Address != c.Email {
			return fmt.Errorf("%w: %q", ErrInvalidEmail, c.Email)
		}
	}
	if c.Document != "" && len(c.Document) != 11 && len(c.Document) != 14 {
		return ErrInvalidDocument
	}
	if c.Status != models.ClientActive && c.Status != models.ClientInactive {
		return ErrInvalidStatus
	}
	return nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func sampleClients() []CreateClientRequest {
	return []CreateClientRequest{
		{Name: "Padaria Central", Email: "contato@padariacentral.com.br", Phone: "(11) 3333-4444", Document: "12.345.678/0001-99", InsuranceType: "Empresarial"},
		{Name: "Oficina Rápida", Phone: "(21) 2222-1111", InsuranceType: "Frota"},
		{Name: "Mercado Bom Preço", Email: "compras@bompreco.com.br", Document: "98.765.432/0001-10", InsuranceType: "Empresarial"},
		{Name: "Clínica Vida", Email: "adm@clinicavida.com.br", Phone: "(11) 98888-7777", InsuranceType: "Saúde"},
	}
}
