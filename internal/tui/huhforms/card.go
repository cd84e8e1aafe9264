// Package huhforms builds the board's huh forms
package huhforms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/models"
)

var (
	ErrTitleRequired = errors.New("o título é obrigatório")
	ErrInvalidValue  = errors.New("valor inválido")
)

// NoClient is the client option for a card without a registered client
const NoClient int64 = 0

// CardFormValues is what the new card form edits in place
type CardFormValues struct {
	Title       string
	Description string
	ClientID    int64
	AssignedTo  string
	Priority    string
	Value       string
	Confirm     bool
}

// NewCardFormValues returns the starting values of a new card form
func NewCardFormValues(assignee string) *CardFormValues {
	return &CardFormValues{
		AssignedTo: assignee,
		Priority:   string(models.DefaultPriority),
		Confirm:    true,
	}
}

// NewCardForm builds the form that opens a card. The client select is
// left out when the registry is empty.
func NewCardForm(v *CardFormValues, clients []*models.Client, descriptionLines int) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title("Título").
			Placeholder("Seguro auto da frota...").
			CharLimit(255).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return ErrTitleRequired
				}
				return nil
			}).
			Value(&v.Title),

		huh.NewText().
			Key("description").
			Title("Descrição").
			Placeholder("Markdown é aceito").
			CharLimit(5000).
			Lines(descriptionLines).
			Value(&v.Description),
	}

	if len(clients) > 0 {
		options := []huh.Option[int64]{huh.NewOption("Nenhum", NoClient)}
		for _, c := range clients {
			options = append(options, huh.NewOption(c.Name, c.ID))
		}
		fields = append(fields,
			huh.NewSelect[int64]().
				Key("client").
				Title("Cliente").
				Options(options...).
				Value(&v.ClientID),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Key("assignee").
			Title("Responsável").
			Value(&v.AssignedTo),

		huh.NewSelect[string]().
			Key("priority").
			Title("Prioridade").
			Options(
				huh.NewOption("Baixa", string(models.PriorityLow)),
				huh.NewOption("Média", string(models.PriorityMedium)),
				huh.NewOption("Alta", string(models.PriorityHigh)),
			).
			Value(&v.Priority),

		huh.NewInput().
			Key("value").
			Title("Valor (R$)").
			Placeholder("0,00").
			Validate(func(s string) error {
				_, err := ParseValue(s)
				return err
			}).
			Value(&v.Value),

		huh.NewConfirm().
			Key("confirm").
			Title("Criar este cartão?").
			Affirmative("Sim").
			Negative("Não").
			Value(&v.Confirm),
	)

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(KeyMap()).WithShowHelp(false)
}

// Request turns the form values into a create request for column
func (v *CardFormValues) Request(column models.Column) (client.NewCardRequest, error) {
	title := strings.TrimSpace(v.Title)
	if title == "" {
		return client.NewCardRequest{}, ErrTitleRequired
	}
	value, err := ParseValue(v.Value)
	if err != nil {
		return client.NewCardRequest{}, err
	}

	req := client.NewCardRequest{
		Title:       title,
		Description: strings.TrimSpace(v.Description),
		AssignedTo:  strings.TrimSpace(v.AssignedTo),
		Column:      column,
		Priority:    v.Priority,
		Value:       value,
	}
	if v.ClientID != NoClient {
		id := v.ClientID
		req.ClientID = &id
	}
	return req, nil
}

// ParseValue reads a deal value typed the Brazilian way ("1.500,50") or
// with a decimal point ("1500.50"). Blank means zero.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return value, nil
}
