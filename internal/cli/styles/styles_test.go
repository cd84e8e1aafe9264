package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/funil/internal/models"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{950.5, "R$ 950,50"},
		{1234567.891, "R$ 1.234.567,89"},
		{-1500, "-R$ 1.500,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestRenderStats_BoardOrder(t *testing.T) {
	out := RenderStats(models.PipelineStats{
		Total:    3,
		ByColumn: map[models.Column]int{models.ColumnProposalSent: 2, models.ColumnPostSale: 1},
	})

	first := strings.Index(out, models.ColumnInitialContact.Title())
	last := strings.Index(out, models.ColumnPostSale.Title())
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, last, first)
	assert.Contains(t, out, "Total")
}

func TestRenderCard_OptionalFields(t *testing.T) {
	out := RenderCard(&models.Card{ID: "c1", Title: "Frota", Column: models.ColumnDealClosed, Priority: models.PriorityHigh})
	assert.Contains(t, out, "Frota")
	assert.NotContains(t, out, "Cliente")

	out = RenderCard(&models.Card{ID: "c1", Title: "Frota", ClientName: "ACME", Priority: models.PriorityLow})
	assert.Contains(t, out, "ACME")
}

func TestRenderClient_FormatsDocument(t *testing.T) {
	out := RenderClient(&models.Client{ID: 7, Name: "Padaria Central", Status: models.ClientActive, Document: "12345678000199"})

	assert.Contains(t, out, "Padaria Central")
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "12.345.678/0001-99")
	assert.NotContains(t, out, "Email")
}

func TestRenderClientList(t *testing.T) {
	assert.Contains(t, RenderClientList(nil), "Nenhum cliente")

	out := RenderClientList([]*models.Client{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno", Document: "12345678901"}})
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
	assert.Contains(t, out, "123.456.789-01")
}

func TestRenderCard_LinkedClient(t *testing.T) {
	id := int64(3)
	out := RenderCard(&models.Card{ID: "c1", Title: "Frota", ClientID: &id, ClientName: "ACME", Column: models.ColumnDealClosed, Priority: models.PriorityLow})
	assert.Contains(t, out, "ACME (#3)")
}
