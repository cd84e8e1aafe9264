package card

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/funil/internal/cli"
	"github.com/thenoetrevino/funil/internal/client"
	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/server"
	cardsvc "github.com/thenoetrevino/funil/internal/services/card"
	"github.com/thenoetrevino/funil/internal/testutil"
)

// setupCLITest starts a pipeline server on a fresh database and returns a
// context carrying a CLI pointed at it.
func setupCLITest(t *testing.T) (context.Context, cardsvc.Service) {
	t.Helper()

	svc := cardsvc.NewService(testutil.SetupTestRepo(t), nil)
	srv := httptest.NewServer(server.New(svc).Handler())
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

func createCard(t *testing.T, svc cardsvc.Service, title, column string) *models.Card {
	t.Helper()
	card, err := svc.CreateCard(context.Background(), cardsvc.CreateCardRequest{Title: title, Column: column})
	require.NoError(t, err)
	return card
}

// ============================================================================
// Create
// ============================================================================

func TestCreateCard_Quiet(t *testing.T) {
	ctx, svc := setupCLITest(t)

	out, err := run(t, ctx, "new", "--title", "Seguro Auto", "--column", "Proposta Enviada", "--quiet")
	require.NoError(t, err)

	id := strings.TrimSpace(out)
	card, err := svc.GetCard(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Seguro Auto", card.Title)
	assert.Equal(t, models.ColumnProposalSent, card.Column)
}

func TestCreateCard_DescriptionFromStdin(t *testing.T) {
	ctx, svc := setupCLITest(t)

	cmd := Cmd()
	cmd.SetContext(ctx)
	cmd.SetIn(strings.NewReader("# Renovação\n\nLigar na segunda."))
	out, err := testutil.ExecuteCommand(t, cmd, "new", "--title", "Vida", "--description", "-", "--quiet")
	require.NoError(t, err)

	card, err := svc.GetCard(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Contains(t, card.Description, "Ligar na segunda.")
}

func TestCreateCard_Validation(t *testing.T) {
	ctx, _ := setupCLITest(t)

	_, err := run(t, ctx, "new", "--title", "X", "--priority", "urgent", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	_, err = run(t, ctx, "new", "--title", "X", "--column", "arquivado", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	out, err := run(t, ctx, "new", "--title", "   ", "--json")
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err), "server rejects blank titles with 400")
	assert.Equal(t, false, testutil.ParseJSON(t, out)["success"])
}

// ============================================================================
// Move
// ============================================================================

func TestMoveCard_ByDirectionAndName(t *testing.T) {
	ctx, svc := setupCLITest(t)
	card := createCard(t, svc, "Frota", "")

	out, err := run(t, ctx, "move", "--id", card.ID, "next", "--json")
	require.NoError(t, err)
	data := testutil.ParseJSON(t, out)["data"].(map[string]any)
	assert.Equal(t, "atendimento_inicial", data["from"])
	assert.Equal(t, "proposta_enviada", data["to"])

	_, err = run(t, ctx, "move", "--id", card.ID, "pós-venda")
	require.NoError(t, err)

	moved, err := svc.GetCard(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ColumnPostSale, moved.Column)
}

func TestMoveCard_Errors(t *testing.T) {
	ctx, svc := setupCLITest(t)
	card := createCard(t, svc, "Frota", string(models.ColumnPostSale))

	_, err := run(t, ctx, "move", "--id", card.ID, "next", "--json")
	assert.ErrorIs(t, err, cli.ErrNoNextColumn)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	out, err := run(t, ctx, "move", "--id", "missing", "next", "--json")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
	errData := testutil.ParseJSON(t, out)["error"].(map[string]any)
	assert.Equal(t, "CARD_NOT_FOUND", errData["code"])

	_, err = run(t, ctx, "move", "next")
	assert.Error(t, err, "--id is required")
}

// ============================================================================
// List, show, delete, stats
// ============================================================================

func TestListCards(t *testing.T) {
	ctx, svc := setupCLITest(t)
	createCard(t, svc, "Lead A", "")
	createCard(t, svc, "Seguro Vida", string(models.ColumnProposalSent))

	out, err := run(t, ctx, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Atendimento Inicial (1)")
	assert.Contains(t, out, "Proposta Enviada (1)")

	out, err = run(t, ctx, "list", "--column", "proposta_enviada", "--json")
	require.NoError(t, err)
	cards := testutil.ParseJSON(t, out)["data"].([]any)
	require.Len(t, cards, 1)
	assert.Equal(t, "Seguro Vida", cards[0].(map[string]any)["title"])
}

func TestShowAndDeleteCard(t *testing.T) {
	ctx, svc := setupCLITest(t)
	card := createCard(t, svc, "Consórcio", "")

	out, err := run(t, ctx, "show", "--id", card.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Consórcio")

	_, err = run(t, ctx, "delete", "--id", card.ID)
	require.NoError(t, err)

	_, err = run(t, ctx, "show", "--id", card.ID, "--json")
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
}

func TestStats(t *testing.T) {
	ctx, svc := setupCLITest(t)
	createCard(t, svc, "A", "")
	createCard(t, svc, "B", "")

	out, err := run(t, ctx, "stats", "--json")
	require.NoError(t, err)

	data := testutil.ParseJSON(t, out)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(2), data["by_column"].(map[string]any)["atendimento_inicial"])
}

func TestCommandsRequireCLI(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.SetContext(context.Background())
	_, _, err := cli.Setup(cmd)
	assert.ErrorIs(t, err, cli.ErrNoCLI)
}

func TestCreateCard_Mine(t *testing.T) {
	ctx, svc := setupCLITest(t)
	t.Setenv("FUNIL_USER", "Carla Mendes")

	out, err := run(t, ctx, "new", "--title", "Consórcio", "--mine", "--quiet")
	require.NoError(t, err)

	card, err := svc.GetCard(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "Carla Mendes", card.AssignedTo)
}
