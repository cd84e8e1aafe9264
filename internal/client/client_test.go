package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/funil/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", nil)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", nil)
	assert.Error(t, err)

	_, err = New("://", nil)
	assert.Error(t, err)
}

func TestMove_SendsCommand(t *testing.T) {
	var gotPath, gotMethod, gotType string
	var gotBody map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod, gotType = r.URL.Path, r.Method, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	res, err := c.Move(context.Background(), models.MoveCommand{CardID: "42", TargetColumn: models.ColumnDealInProgress})
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Equal(t, "/kanban/card/42/move", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]string{"column": "venda_andamento"}, gotBody)
}

func TestMove_ApplicationRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"card not found"}`))
	})

	res, err := c.Move(context.Background(), models.MoveCommand{CardID: "42", TargetColumn: models.ColumnPostSale})
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, "card not found", res.Message)
}

func TestMove_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		code    ErrorCode
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"success":false,"message":"unknown column"}`))
			},
			code: ErrStatus,
		},
		{
			name: "html body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>login</html>`))
			},
			code: ErrDecode,
		},
		{
			name: "missing success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"ok":true}`))
			},
			code: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			_, err := c.Move(context.Background(), models.MoveCommand{CardID: "1", TargetColumn: models.ColumnPostSale})
			require.Error(t, err)

			code, ok := CodeOf(err)
			require.True(t, ok, "expected *RequestError, got %T", err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMove_StatusErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"unknown column"}`))
	})

	_, err := c.Move(context.Background(), models.MoveCommand{CardID: "1", TargetColumn: models.ColumnPostSale})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Equal(t, "unknown column", reqErr.Message)
}

func TestMove_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(srv.URL, nil)
	require.NoError(t, err)
	srv.Close()

	_, err = c.Move(context.Background(), models.MoveCommand{CardID: "1", TargetColumn: models.ColumnPostSale})

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrTransport, code)
}

func TestMove_InvalidCommandNeverHitsNetwork(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Move(context.Background(), models.MoveCommand{TargetColumn: models.ColumnPostSale})

	assert.ErrorIs(t, err, models.ErrEmptyCardID)
	assert.False(t, called)
}

func TestMove_EscapesCardID(t *testing.T) {
	var rawPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	_, err := c.Move(context.Background(), models.MoveCommand{CardID: "a/b", TargetColumn: models.ColumnPostSale})
	require.NoError(t, err)
	assert.Equal(t, "/kanban/card/a%2Fb/move", rawPath)
}

func TestBoard(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/kanban/board", r.URL.Path)
		_, _ = w.Write([]byte(`{"columns":[{"column":"proposta_enviada","cards":[{"id":"42","title":"Seguro"}]}]}`))
	})

	snap, err := c.Board(context.Background())
	require.NoError(t, err)

	cards := snap.Cards(models.ColumnProposalSent)
	require.Len(t, cards, 1)
	assert.Equal(t, "42", cards[0].ID)
}

func TestCreateAndDeleteCard(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kanban/card/new":
			var req NewCardRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(models.Card{ID: "new-id", Title: req.Title, Column: models.ColumnInitialContact})
		case "/kanban/card/new-id/delete":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	card, err := c.CreateCard(context.Background(), NewCardRequest{Title: "Plano de saúde"})
	require.NoError(t, err)
	assert.Equal(t, "Plano de saúde", card.Title)

	require.NoError(t, c.DeleteCard(context.Background(), card.ID))
	assert.Error(t, c.DeleteCard(context.Background(), "other"))
	assert.ErrorIs(t, c.DeleteCard(context.Background(), ""), models.ErrEmptyCardID)
}

func TestCard(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kanban/card/42" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CARD_NOT_FOUND","message":"card not found"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"42","title":"Seguro","column":"pos_venda"}`))
	})

	card, err := c.Card(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, models.ColumnPostSale, card.Column)

	_, err = c.Card(context.Background(), "7")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "card not found", reqErr.Message)
}

func TestListClients_EncodesQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"id":3,"name":"Padaria & Cia","status":"ativo"}]`))
	})

	list, err := c.ListClients(context.Background(), "padaria & cia")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, "padaria & cia", gotQuery)
}

func TestRequestError_ServerCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CLIENT_NOT_FOUND","message":"client not found: 9"}}`))
	})

	_, err := c.GetClient(context.Background(), 9)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "CLIENT_NOT_FOUND", reqErr.ServerCode)
	assert.Equal(t, "client not found: 9", reqErr.Message)
}
