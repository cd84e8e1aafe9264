package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Client statuses
const (
	ClientActive   = "ativo"
	ClientInactive = "inativo"
)

// Client is a registered customer. Cards reference a client by ID and
// keep a copy of its name for display.
type Client struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Document      string    `json:"cpf_cnpj,omitempty"` // digits only
	Address       string    `json:"address,omitempty"`
	InsuranceType string    `json:"insurance_type,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetID satisfies the quiet-mode output contract of the CLI formatter
func (c *Client) GetID() string {
	return strconv.FormatInt(c.ID, 10)
}

// Matches reports whether query appears, case-insensitively, in the
// name, email, phone or document of the client. An empty query matches.
func (c *Client) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{c.Name, c.Email, c.Phone, c.Document} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FormatDocument renders a CPF (11 digits) or CNPJ (14 digits) with its
// usual punctuation. Anything else is returned unchanged.
func FormatDocument(digits string) string {
	switch len(digits) {
	case 11:
		return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
	case 14:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
	default:
		return digits
	}
}

// ParseClientID parses a positive client identifier
func ParseClientID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClientID, s)
	}
	return id, nil
}
