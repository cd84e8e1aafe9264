package clients

import "errors"

// Client validation errors
var (
	ErrEmptyName       = errors.New("client name cannot be empty")
	ErrNameTooLong     = errors.New("client name cannot exceed 255 characters")
	ErrInvalidEmail    = errors.New("invalid client email")
	ErrInvalidDocument = errors.New("cpf/cnpj must have 11 or 14 digits")
	ErrInvalidStatus   = errors.New("client status must be ativo or inativo")
)
