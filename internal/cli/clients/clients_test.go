package clients

import (
	"context"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/funil/internal/cli"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/server"
	cardsvc "github.com/thenoetrevino/funil/internal/services/card"
	clientsvc "github.com/thenoetrevino/funil/internal/services/clients"
	"github.com/thenoetrevino/funil/internal/testutil"
)

// setupCLITest starts a pipeline server with a client registry and returns a
// context carrying a CLI pointed at it.
func setupCLITest(t *testing.T) (context.Context, clientsvc.Service) {
	t.Helper()

	cards, registry := testutil.SetupTestRepos(t)
	svc := clientsvc.NewService(registry)
	srv := httptest.NewServer(server.New(cardsvc.NewService(cards, nil), server.WithClients(svc)).Handler())
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL, nil)
	require.NoError(t, err)

	return cli.WithCLI(context.Background(), &cli.CLI{Client: c}), svc
}

func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := Cmd()
	cmd.SetContext(ctx)
	return testutil.ExecuteCommand(t, cmd, args...)
}

func TestCreateClient_Quiet(t *testing.T) {
	ctx, svc := setupCLITest(t)

	out, err := run(t, ctx, "new", "--name", "Padaria Central", "--document", "12.345.678/0001-99", "--quiet")
	require.NoError(t, err)

	id, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	require.NoError(t, err)
	c, err := svc.GetClient(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Padaria Central", c.Name)
	assert.Equal(t, "12345678000199", c.Document)
}

func TestCreateClient_Validation(t *testing.T) {
	ctx, _ := setupCLITest(t)

	out, err := run(t, ctx, "new", "--name", "Ana", "--email", "not-an-email", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))
	assert.Equal(t, false, testutil.ParseJSON(t, out)["success"])

	_, err = run(t, ctx, "new", "--name", "Ana", "--document", "123", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	_, err = run(t, ctx, "new")
	assert.Error(t, err, "--name is required")
}

func TestListClients_Search(t *testing.T) {
	ctx, svc := setupCLITest(t)
	_, err := svc.Seed(context.Background())
	require.NoError(t, err)

	out, err := run(t, ctx, "list", "--search", "padaria", "--json")
	require.NoError(t, err)
	list := testutil.ParseJSON(t, out)["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Padaria Central", list[0].(map[string]any)["name"])

	out, err = run(t, ctx, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Oficina Rápida")
	assert.Contains(t, out, "Clínica Vida")
}

func TestEditClient_OnlyChangedFlags(t *testing.T) {
	ctx, svc := setupCLITest(t)
	c, err := svc.CreateClient(context.Background(), clientsvc.CreateClientRequest{
		Name:  "Ana Souza",
		Email: "ana@mail.com",
	})
	require.NoError(t, err)
	id := strconv.FormatInt(c.ID, 10)

	_, err = run(t, ctx, "edit", "--id", id, "--phone", "(11) 3333-4444", "--status", "inativo")
	require.NoError(t, err)

	edited, err := svc.GetClient(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", edited.Name)
	assert.Equal(t, "ana@mail.com", edited.Email)
	assert.Equal(t, "(11) 3333-4444", edited.Phone)
	assert.Equal(t, "inativo", edited.Status)

	_, err = run(t, ctx, "edit", "--id", id, "--status", "perdido", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))
}

func TestShowAndDeleteClient(t *testing.T) {
	ctx, svc := setupCLITest(t)
	c, err := svc.CreateClient(context.Background(), clientsvc.CreateClientRequest{Name: "Mercado Bom Preço"})
	require.NoError(t, err)
	id := strconv.FormatInt(c.ID, 10)

	out, err := run(t, ctx, "show", "--id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Mercado Bom Preço")

	_, err = run(t, ctx, "delete", "--id", id)
	require.NoError(t, err)

	out, err = run(t, ctx, "show", "--id", id, "--json")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
	errData := testutil.ParseJSON(t, out)["error"].(map[string]any)
	assert.Equal(t, "CLIENT_NOT_FOUND", errData["code"])
}
