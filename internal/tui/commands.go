package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/reorder"
)

// requestTimeout bounds form requests; moves are bounded by the synchronizer
const requestTimeout = 10 * time.Second

// waitForMove sends a dropped card's move and reports the outcome
func waitForMove(p *reorder.Pending) tea.Cmd {
	return func() tea.Msg {
		return moveResolvedMsg{outcome: p.Wait()}
	}
}

// loadBoard fetches the authoritative board
func loadBoard(s *reorder.Synchronizer, reason reloadReason) tea.Cmd {
	return func() tea.Msg {
		snap, err := s.FetchBoard()
		return boardLoadedMsg{snapshot: snap, err: err, reason: reason}
	}
}

// listenForTicks waits for the next polling tick. It must be re-issued
// after every tick.
func listenForTicks(ctx context.Context, ticks <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticks:
			return pollTickMsg{at: t}
		}
	}
}

// listenForBanners waits for the notification center to change
func listenForBanners(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return bannersChangedMsg{}
		}
	}
}

// listenForPush waits for the next push event
func listenForPush(ctx context.Context, ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return pushClosedMsg{}
			}
			return pushEventMsg{event: event}
		}
	}
}

// loadClients fetches the client registry for the new card form
func loadClients(ctx context.Context, lister client.ClientLister) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		list, err := lister.ListClients(ctx, "")
		return clientsLoadedMsg{clients: list, err: err}
	}
}

// createCard sends a new card to the server
func createCard(ctx context.Context, creator client.CardCreator, req client.NewCardRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		card, err := creator.CreateCard(ctx, req)
		return cardCreatedMsg{card: card, err: err}
	}
}
