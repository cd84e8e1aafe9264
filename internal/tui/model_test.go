package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/config"
	"github.com/thenoetrevino/funil/internal/events"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/notify"
	"github.com/thenoetrevino/funil/internal/reorder"
	"github.com/thenoetrevino/funil/internal/tui/huhforms"
)

// ============================================================================
// Test Helpers
// ============================================================================

type fakeServer struct {
	mu       sync.Mutex
	snapshot models.BoardSnapshot
	moveErr  error
	result   models.MoveResult
	fetchErr error
	moves    []models.MoveCommand
	fetches  int

	clients   []*models.Client
	listErr   error
	created   []client.NewCardRequest
	createErr error
}

func (f *fakeServer) Move(ctx context.Context, cmd models.MoveCommand) (models.MoveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, cmd)
	return f.result, f.moveErr
}

func (f *fakeServer) Board(ctx context.Context) (models.BoardSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.snapshot, f.fetchErr
}

func (f *fakeServer) CreateCard(ctx context.Context, req client.NewCardRequest) (*models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	card := &models.Card{ID: "novo", Title: req.Title, Column: req.Column, ClientID: req.ClientID}
	for i := range f.snapshot.Columns {
		if f.snapshot.Columns[i].Column == req.Column {
			f.snapshot.Columns[i].Cards = append(f.snapshot.Columns[i].Cards, card)
		}
	}
	return card, nil
}

func (f *fakeServer) ListClients(ctx context.Context, query string) ([]*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients, f.listErr
}

func testSnapshot() models.BoardSnapshot {
	return models.BoardSnapshot{Columns: []models.ColumnCards{
		{Column: models.ColumnInitialContact, Cards: []*models.Card{
			{ID: "a", Title: "Padaria Central"},
			{ID: "b", Title: "Oficina do Zé"},
		}},
		{Column: models.ColumnProposalSent, Cards: []*models.Card{
			{ID: "c", Title: "Mercado Bom Preço", Description: "Proposta **anual**"},
		}},
		{Column: models.ColumnDealInProgress},
		{Column: models.ColumnDealClosed},
		{Column: models.ColumnPostSale},
	}}
}

func newTestModel(t *testing.T, srv *fakeServer, push <-chan events.Event) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Sync.PollInterval = time.Hour
	m := New(context.Background(), Options{
		Mover:   srv,
		Fetcher: srv,
		Creator: srv,
		Clients: srv,
		Config:  cfg,
		Push:    push,
	})
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m.Update(loadBoard(m.sync, reloadInitial)())
	require.True(t, m.loaded, "initial load should succeed")
	return m
}

func press(m *Model, key string) tea.Cmd {
	var k tea.Key
	switch key {
	case "space":
		k = tea.Key{Code: tea.KeySpace}
	case "enter":
		k = tea.Key{Code: tea.KeyEnter}
	case "esc":
		k = tea.Key{Code: tea.KeyEsc}
	case "ctrl+c":
		k = tea.Key{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+s":
		k = tea.Key{Code: 's', Mod: tea.ModCtrl}
	default:
		r := []rune(key)[0]
		k = tea.Key{Text: key, Code: r}
	}
	_, cmd := m.Update(tea.KeyPressMsg(k))
	return cmd
}

// run executes cmd and feeds its message back into the model, following
// the chain until no command is left.
func run(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func bannerMessages(m *Model) []string {
	var out []string
	for _, n := range m.center.Active() {
		out = append(out, n.Message)
	}
	return out
}

// ============================================================================
// Drag and drop
// ============================================================================

func TestDragAcrossColumns_Success(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot(), result: models.NewMoveResult(true, "")}
	m := newTestModel(t, srv, nil)

	assert.Nil(t, press(m, "space"))
	require.NotNil(t, m.sync.Active())
	assert.Equal(t, "a", m.sync.Active().CardID())
	assert.Equal(t, reorder.StateDragging, m.sync.State())

	press(m, "l")
	col, idx, ok := m.sync.Board().Locate("a")
	require.True(t, ok)
	assert.Equal(t, models.ColumnProposalSent, col, "carry moves the card at once")
	assert.Equal(t, 0, idx)
	assert.Len(t, srv.moves, 0, "carrying must not talk to the server")

	cur := m.currentCard()
	require.NotNil(t, cur)
	assert.Equal(t, "a", cur.ID, "selection follows the carried card")

	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, reorder.StatePending, m.sync.State())
	assert.Equal(t, 1, m.sync.InFlight())

	run(m, cmd)

	require.Len(t, srv.moves, 1)
	assert.Equal(t, models.MoveCommand{CardID: "a", TargetColumn: models.ColumnProposalSent}, srv.moves[0])
	assert.Equal(t, reorder.StateIdle, m.sync.State())
	assert.Equal(t, "Atendimento Inicial (1)", m.sync.Board().Header(models.ColumnInitialContact))
	assert.Equal(t, "Proposta Enviada (2)", m.sync.Board().Header(models.ColumnProposalSent))
	assert.Contains(t, bannerMessages(m), reorder.MsgMoveSucceeded)
	assert.Equal(t, 1, srv.fetches, "a confirmed move does not reload")
}

func TestDrop_FailureReloadsOnce(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot(), result: models.NewMoveResult(false, "card not found")}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	press(m, "l")
	run(m, press(m, "enter"))

	assert.Equal(t, 2, srv.fetches, "initial load plus exactly one reload")
	assert.Equal(t, 1, m.sync.Reloads())
	assert.Contains(t, bannerMessages(m), reorder.MsgMoveRejected)

	col, _, ok := m.sync.Board().Locate("a")
	require.True(t, ok)
	assert.Equal(t, models.ColumnInitialContact, col, "the reload restores the server's board")
	assert.False(t, m.sync.Stale())
}

func TestDrop_TransportFailure(t *testing.T) {
	srv := &fakeServer{
		snapshot: testSnapshot(),
		moveErr:  &client.RequestError{Code: client.ErrTransport, Op: "move", Err: errors.New("connection refused")},
	}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	press(m, "j")
	run(m, press(m, "space"))

	assert.Equal(t, 2, srv.fetches)
	assert.Contains(t, bannerMessages(m), reorder.MsgConnection)
}

func TestDrop_FailedReloadMarksStale(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot(), result: models.NewMoveResult(false, "")}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	press(m, "l")
	cmd := press(m, "enter")

	srv.mu.Lock()
	srv.fetchErr = errors.New("server down")
	srv.mu.Unlock()
	run(m, cmd)

	assert.True(t, m.sync.Stale())
	assert.NotContains(t, bannerMessages(m), MsgLoadFailed, "the move already reported the failure")
	assert.Contains(t, m.View().Content, "desatualizado")
}

func TestReorderWithinColumn(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot(), result: models.NewMoveResult(true, "")}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	press(m, "j")
	_, idx, _ := m.sync.Board().Locate("a")
	assert.Equal(t, 1, idx)

	press(m, "j")
	_, idx, _ = m.sync.Board().Locate("a")
	assert.Equal(t, 1, idx, "carry stops at the bottom of the column")

	run(m, press(m, "enter"))
	require.Len(t, srv.moves, 1)
	assert.Equal(t, models.ColumnInitialContact, srv.moves[0].TargetColumn)
}

func TestCancelDrag(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	press(m, "l")
	press(m, "l")
	assert.Nil(t, press(m, "esc"))

	col, idx, ok := m.sync.Board().Locate("a")
	require.True(t, ok)
	assert.Equal(t, models.ColumnInitialContact, col)
	assert.Equal(t, 0, idx)
	assert.Nil(t, m.sync.Active())
	assert.Empty(t, srv.moves)
}

func TestDrag_EmptyColumnPicksNothing(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	press(m, "l")
	press(m, "l")
	assert.Nil(t, m.currentCard())
	press(m, "space")
	assert.Nil(t, m.sync.Active())
}

// ============================================================================
// Loading and polling
// ============================================================================

func TestInitialLoadFailure(t *testing.T) {
	srv := &fakeServer{fetchErr: errors.New("connection refused")}
	cfg := config.Default()
	m := New(context.Background(), Options{Mover: srv, Fetcher: srv, Config: cfg})
	t.Cleanup(m.Close)

	m.Update(loadBoard(m.sync, reloadInitial)())

	assert.False(t, m.loaded)
	assert.Contains(t, bannerMessages(m), MsgLoadFailed)
}

func TestManualReload(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	run(m, press(m, "r"))
	assert.Equal(t, 2, srv.fetches)
}

func TestPollTick_SkippedWhileDragging(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	_, cmd := m.Update(pollTickMsg{at: time.Now()})
	require.NotNil(t, cmd, "the tick listener is always re-issued")
	assert.Equal(t, 1, srv.fetches)
	assert.NotNil(t, m.sync.Active(), "polling must not abort the drag")
}

func TestFocus_TogglesPolling(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	cfg := config.Default()
	cfg.Sync.PollEnabled = true
	cfg.Sync.PollInterval = time.Hour
	m := New(context.Background(), Options{Mover: srv, Fetcher: srv, Config: cfg})
	t.Cleanup(m.Close)

	m.Update(tea.FocusMsg{})
	assert.True(t, m.sync.Poller().Running())

	m.Update(tea.BlurMsg{})
	assert.False(t, m.sync.Poller().Running())

	m.Update(tea.FocusMsg{})
	assert.True(t, m.sync.Poller().Running())
}

// ============================================================================
// Push updates
// ============================================================================

func TestPush_RemoteMove(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	push := make(chan events.Event)
	m := newTestModel(t, srv, push)

	_, cmd := m.Update(pushEventMsg{event: events.Event{
		Type:   events.EventCardMoved,
		CardID: "a",
		Column: string(models.ColumnDealClosed),
	}})
	assert.NotNil(t, cmd, "the push listener is re-issued")

	col, idx, ok := m.sync.Board().Locate("a")
	require.True(t, ok)
	assert.Equal(t, models.ColumnDealClosed, col)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "Venda Concluída (1)", m.sync.Board().Header(models.ColumnDealClosed))
}

func TestPush_RemoteMoveIgnoresHeldCard(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, make(chan events.Event))

	press(m, "space")
	m.Update(pushEventMsg{event: events.Event{Type: events.EventCardMoved, CardID: "a", Column: string(models.ColumnPostSale)}})

	col, _, _ := m.sync.Board().Locate("a")
	assert.Equal(t, models.ColumnInitialContact, col)
	assert.NotNil(t, m.sync.Active())
}

func TestPush_Notification(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, make(chan events.Event))

	m.Update(pushEventMsg{event: events.Event{Type: events.EventNotification, Message: "Nova venda!", Kind: "success"}})

	active := m.center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Nova venda!", active[0].Message)
	assert.Equal(t, notify.KindSuccess, active[0].Kind)
}

func TestPush_CreatedTriggersReload(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, make(chan events.Event))

	_, cmd := m.Update(pushEventMsg{event: events.Event{Type: events.EventCardCreated, CardID: "z"}})
	require.NotNil(t, cmd)

	msg := loadBoard(m.sync, reloadPush)()
	m.Update(msg)
	assert.Equal(t, 2, srv.fetches)
}

func TestPush_Closed(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	push := make(chan events.Event)
	m := newTestModel(t, srv, push)
	require.True(t, m.live)

	close(push)
	msg := listenForPush(context.Background(), push)()
	assert.IsType(t, pushClosedMsg{}, msg)

	m.Update(msg)
	assert.False(t, m.live)
	assert.Contains(t, bannerMessages(m), MsgLiveStopped)
	assert.Nil(t, listenForPush(context.Background(), m.push))
}

func TestPushStatus(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	m.PushStatus("warning", "Live updates disconnected, reconnecting...")
	m.PushStatus("info", "Live updates reconnected")

	active := m.center.Active()
	require.Len(t, active, 2)
	assert.Equal(t, notify.KindError, active[0].Kind)
	assert.Equal(t, notify.KindInfo, active[1].Kind)
}

// ============================================================================
// Banners and view
// ============================================================================

func TestDismissBanner(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	m.center.Notify("primeiro", notify.KindInfo)
	m.center.Notify("segundo", notify.KindInfo)
	press(m, "x")

	assert.Equal(t, []string{"primeiro"}, bannerMessages(m))
}

func TestBannerListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	assert.IsType(t, bannersChangedMsg{}, listenForBanners(ctx, changes)())

	cancel()
	assert.Nil(t, listenForBanners(ctx, changes)())
}

func TestView(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.True(t, v.ReportFocus)
	assert.Contains(t, v.Content, "Atendimento Inicial (2)")
	assert.Contains(t, v.Content, "Proposta Enviada (1)")
	assert.Contains(t, v.Content, "Padaria Central")
	assert.Contains(t, v.Content, "NORMAL")

	press(m, "space")
	assert.Contains(t, m.View().Content, "ARRASTANDO")
}

func TestView_BeforeResize(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := New(context.Background(), Options{Mover: srv, Fetcher: srv})
	t.Cleanup(m.Close)

	assert.Equal(t, "Loading...", m.View().Content)
}

func TestDetailAndHelpModes(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	press(m, "l")
	press(m, "v")
	assert.Equal(t, modeDetail, m.mode)
	assert.Contains(t, m.View().Content, "Mercado Bom Preço")

	press(m, "esc")
	assert.Equal(t, modeNormal, m.mode)

	press(m, "?")
	assert.Equal(t, modeHelp, m.mode)
	assert.Contains(t, m.View().Content, "Atalhos")
	press(m, "?")
	assert.Equal(t, modeNormal, m.mode)
}

func TestQuit_CancelsDrag(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	press(m, "space")
	press(m, "l")
	cmd := press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	col, _, _ := m.sync.Board().Locate("a")
	assert.Equal(t, models.ColumnInitialContact, col)
	assert.True(t, m.quitting)
}

// ============================================================================
// Detail pane
// ============================================================================

func TestDetail_ScrollsLongDescription(t *testing.T) {
	snap := testSnapshot()
	var items []string
	for i := 1; i <= 80; i++ {
		items = append(items, fmt.Sprintf("- item %d", i))
	}
	snap.Columns[0].Cards[0].Description = strings.Join(items, "\n")
	m := newTestModel(t, &fakeServer{snapshot: snap}, nil)

	press(m, "v")
	require.Equal(t, modeDetail, m.mode)
	assert.True(t, m.detail.AtTop())
	assert.LessOrEqual(t, lipgloss.Height(m.View().Content), 40, "the pane must fit the screen")

	press(m, "j")
	press(m, "j")
	assert.False(t, m.detail.AtTop(), "j scrolls the description")

	press(m, "esc")
	assert.Equal(t, modeNormal, m.mode)

	press(m, "v")
	assert.True(t, m.detail.AtTop(), "reopening starts from the top")
}

// ============================================================================
// New card form
// ============================================================================

// openForm presses the new card key and delivers the client list
func openForm(t *testing.T, m *Model) {
	t.Helper()
	cmd := press(m, "n")
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Equal(t, modeForm, m.mode)
	require.NotNil(t, m.form)
}

func TestNewCard_CreatesInFocusedColumn(t *testing.T) {
	srv := &fakeServer{
		snapshot: testSnapshot(),
		clients: []*models.Client{
			{ID: 2, Name: "Padaria Central", Status: models.ClientActive},
			{ID: 3, Name: "Antiga Ltda", Status: models.ClientInactive},
		},
	}
	m := newTestModel(t, srv, nil)

	press(m, "l")
	openForm(t, m)
	assert.Equal(t, models.ColumnProposalSent, m.formColumn)
	assert.Contains(t, m.View().Content, "Novo cartão em Proposta Enviada")

	m.formValues.Title = "Seguro Frota"
	m.formValues.Value = "2.500,00"
	m.formValues.ClientID = 2

	cmd := press(m, "ctrl+s")
	require.NotNil(t, cmd)
	assert.Equal(t, modeNormal, m.mode)
	assert.Nil(t, m.form)

	run(m, cmd)

	require.Len(t, srv.created, 1)
	req := srv.created[0]
	assert.Equal(t, "Seguro Frota", req.Title)
	assert.Equal(t, models.ColumnProposalSent, req.Column)
	assert.InDelta(t, 2500.0, req.Value, 0.001)
	require.NotNil(t, req.ClientID)
	assert.Equal(t, int64(2), *req.ClientID)

	assert.Contains(t, bannerMessages(m), "Cartão criado: Seguro Frota")
	cur := m.currentCard()
	require.NotNil(t, cur)
	assert.Equal(t, "novo", cur.ID, "the new card is selected after the reload")
}

func TestNewCard_EscCancels(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	openForm(t, m)
	m.formValues.Title = "Descartado"

	assert.Nil(t, press(m, "esc"))
	assert.Equal(t, modeNormal, m.mode)
	assert.Nil(t, m.form)
	assert.Empty(t, srv.created)
}

func TestNewCard_BlankTitleKeepsFormOpen(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	m := newTestModel(t, srv, nil)

	openForm(t, m)
	assert.Nil(t, press(m, "ctrl+s"))
	assert.Equal(t, modeForm, m.mode)
	assert.Contains(t, bannerMessages(m), huhforms.ErrTitleRequired.Error())
	assert.Empty(t, srv.created)
}

func TestNewCard_ClientListFailureStillOpensForm(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot(), listErr: errors.New("registry down")}
	m := newTestModel(t, srv, nil)

	openForm(t, m)
	assert.Equal(t, models.ColumnInitialContact, m.formColumn)
}

func TestNewCard_ServerRejects(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot(), createErr: errors.New("boom")}
	m := newTestModel(t, srv, nil)

	openForm(t, m)
	m.formValues.Title = "Seguro Vida"
	run(m, press(m, "ctrl+s"))

	assert.Contains(t, bannerMessages(m), MsgCreateFailed)
	assert.Len(t, srv.created, 1)
	assert.Equal(t, 2, m.sync.Board().Count(models.ColumnInitialContact), "a failed create leaves the board alone")
}

func TestNewCard_DisabledWithoutCreator(t *testing.T) {
	srv := &fakeServer{snapshot: testSnapshot()}
	cfg := config.Default()
	cfg.Sync.PollInterval = time.Hour
	m := New(context.Background(), Options{Mover: srv, Fetcher: srv, Config: cfg})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m.Update(loadBoard(m.sync, reloadInitial)())

	assert.Nil(t, press(m, "n"))
	assert.Equal(t, modeNormal, m.mode)
}
