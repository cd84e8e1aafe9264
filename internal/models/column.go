package models

import (
	"encoding/json"
	"fmt"
)

// Column identifies a pipeline stage on the board.
// The set of columns is closed: only the values declared below are valid.
type Column string

const (
	ColumnInitialContact Column = "atendimento_inicial"
	ColumnProposalSent   Column = "proposta_enviada"
	ColumnDealInProgress Column = "venda_andamento"
	ColumnDealClosed     Column = "venda_concluida"
	ColumnPostSale       Column = "pos_venda"
)

// columnOrder is the board's left-to-right stage order
var columnOrder = []Column{
	ColumnInitialContact,
	ColumnProposalSent,
	ColumnDealInProgress,
	ColumnDealClosed,
	ColumnPostSale,
}

var columnTitles = map[Column]string{
	ColumnInitialContact: "Atendimento Inicial",
	ColumnProposalSent:   "Proposta Enviada",
	ColumnDealInProgress: "Venda em Andamento",
	ColumnDealClosed:     "Venda Concluída",
	ColumnPostSale:       "Pós-Venda",
}

// Columns returns every pipeline stage in board order.
// The returned slice is a copy and may be modified by the caller.
func Columns() []Column {
	out := make([]Column, len(columnOrder))
	copy(out, columnOrder)
	return out
}

// ParseColumn converts a raw identifier into a Column.
func ParseColumn(s string) (Column, error) {
	c := Column(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
	}
	return c, nil
}

// Valid reports whether c is one of the declared pipeline stages
func (c Column) Valid() bool {
	_, ok := columnTitles[c]
	return ok
}

// Title returns the human readable stage name
func (c Column) Title() string {
	if t, ok := columnTitles[c]; ok {
		return t
	}
	return string(c)
}

// Index returns the position of c in board order, or -1 if c is unknown
func (c Column) Index() int {
	for i, col := range columnOrder {
		if col == c {
			return i
		}
	}
	return -1
}

func (c Column) String() string {
	return string(c)
}

// UnmarshalJSON rejects identifiers outside the enumeration.
func (c *Column) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColumn(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
