package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/thenoetrevino/funil/internal/database"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/models"
)

const maxTitleLength = 255

// Service defines all card-related business operations
type Service interface {
	// Read operations
	GetBoard(ctx context.Context) (models.BoardSnapshot, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	Stats(ctx context.Context) (models.PipelineStats, error)

	// Write operations
	CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error)
	MoveCard(ctx context.Context, cmd models.MoveCommand) (*models.Card, error)
	DeleteCard(ctx context.Context, id string) error

	// Seed adds sample cards to an empty board and returns how many were
	// added. Sample cards whose client name matches one of clients are
	// linked to it.
	Seed(ctx context.Context, clients []*models.Client) (int, error)
}

// CreateCardRequest encapsulates all data needed to create a card.
// Column and Priority are raw strings so parsing errors surface here.
type CreateCardRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ClientID    *int64     `json:"client_id,omitempty"`
	ClientName  string     `json:"client_name"` // ignored when ClientID is set
	AssignedTo  string     `json:"assigned_to"`
	Column      string     `json:"column"`   // empty means atendimento_inicial
	Priority    string     `json:"priority"` // empty means medium
	Value       float64    `json:"value"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Broadcaster delivers board changes to connected boards
type Broadcaster interface {
	Broadcast(event events.Event) error
}

// service implements Service interface
type service struct {
	repo  database.CardRepository
	hub   Broadcaster
	newID func() string
}

// NewService creates a new card service. hub may be nil.
func NewService(repo database.CardRepository, hub Broadcaster) Service {
	return &service{
		repo:  repo,
		hub:   hub,
		newID: func() string { return uuid.NewString() },
	}
}

// GetBoard returns every column of the pipeline in board order,
// including empty ones.
func (s *service) GetBoard(ctx context.Context) (models.BoardSnapshot, error) {
	cards, err := s.repo.ListCards(ctx)
	if err != nil {
		return models.BoardSnapshot{}, fmt.Errorf("failed to load board: %w", err)
	}

	byColumn := make(map[models.Column][]*models.Card)
	for _, c := range cards {
		byColumn[c.Column] = append(byColumn[c.Column], c)
	}

	snap := models.BoardSnapshot{}
	for _, col := range models.Columns() {
		list := byColumn[col]
		if list == nil {
			list = []*models.Card{}
		}
		snap.Columns = append(snap.Columns, models.ColumnCards{Column: col, Cards: list})
	}
	return snap, nil
}

func (s *service) GetCard(ctx context.Context, id string) (*models.Card, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrEmptyCardID
	}
	return s.repo.GetCard(ctx, id)
}

// Stats counts cards per stage, listing every stage even when empty
func (s *service) Stats(ctx context.Context) (models.PipelineStats, error) {
	counts, err := s.repo.CountByColumn(ctx)
	if err != nil {
		return models.PipelineStats{}, err
	}
	value, err := s.repo.SumValue(ctx)
	if err != nil {
		return models.PipelineStats{}, err
	}

	stats := models.PipelineStats{ByColumn: make(map[models.Column]int), Value: value}
	for _, col := range models.Columns() {
		stats.ByColumn[col] = counts[col]
		stats.Total += counts[col]
	}
	return stats, nil
}

// CreateCard validates the request and appends the card to its column
func (s *service) CreateCard(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	card, err := s.validateCreateCard(req)
	if err != nil {
		return nil, err
	}
	card.ID = s.newID()

	if err := s.repo.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.publish(events.Event{Type: events.EventCardCreated, CardID: card.ID, Column: string(card.Column)})
	return card, nil
}

// MoveCard appends the card to the end of the target column
func (s *service) MoveCard(ctx context.Context, cmd models.MoveCommand) (*models.Card, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	card, err := s.repo.MoveCard(ctx, cmd.CardID, cmd.TargetColumn)
	if err != nil {
		return nil, err
	}

	slog.Debug("card moved", "card_id", card.ID, "column", card.Column, "position", card.Position)
	s.publish(events.Event{Type: events.EventCardMoved, CardID: card.ID, Column: string(card.Column)})
	return card, nil
}

func (s *service) DeleteCard(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return models.ErrEmptyCardID
	}
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		return err
	}

	s.publish(events.Event{Type: events.EventCardDeleted, CardID: id})
	return nil
}

func (s *service) Seed(ctx context.Context, clients []*models.Client) (int, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return 0, err
	}
	if stats.Total > 0 {
		return 0, nil
	}

	byName := make(map[string]int64, len(clients))
	for _, c := range clients {
		byName[c.Name] = c.ID
	}

	for i, req := range sampleCards() {
		if id, ok := byName[req.ClientName]; ok {
			req.ClientID = &id
		}
		if _, err := s.CreateCard(ctx, req); err != nil {
			return i, fmt.Errorf("failed to seed card %q: %w", req.Title, err)
		}
	}
	return len(sampleCards()), nil
}

func (s *service) validateCreateCard(req CreateCardRequest) (*models.Card, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if req.Value < 0 {
		return nil, ErrNegativeValue
	}

	column := models.ColumnInitialContact
	if req.Column != "" {
		c, err := models.ParseColumn(req.Column)
		if err != nil {
			return nil, err
		}
		column = c
	}

	priority, err := models.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	return &models.Card{
		Title:       title,
		Description: req.Description,
		ClientID:    req.ClientID,
		ClientName:  strings.TrimSpace(req.ClientName),
		AssignedTo:  strings.TrimSpace(req.AssignedTo),
		Column:      column,
		Priority:    priority,
		Value:       req.Value,
		DueDate:     req.DueDate,
	}, nil
}

// publish sends a board change to the push hub if one is configured.
// A failed publish never fails the write that caused it.
func (s *service) publish(event events.Event) {
	if s.hub == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := s.hub.Broadcast(event); err != nil {
		slog.Warn("failed to publish board change",
			"event_type", event.Type,
			"card_id", event.CardID,
			"error", err)
	}
}
