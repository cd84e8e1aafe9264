package models

import (
	"encoding/json"
	"errors"
	"testing"
)

// ============================================================================
// Column Tests
// ============================================================================

func TestColumns_Order(t *testing.T) {
	want := []Column{
		ColumnInitialContact,
		ColumnProposalSent,
		ColumnDealInProgress,
		ColumnDealClosed,
		ColumnPostSale,
	}

	got := Columns()
	if len(got) != len(want) {
		t.Fatalf("Columns() returned %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %s, want %s", i, got[i], want[i])
		}
		if got[i].Index() != i {
			t.Errorf("%s.Index() = %d, want %d", got[i], got[i].Index(), i)
		}
	}
}

func TestColumns_ReturnsCopy(t *testing.T) {
	cols := Columns()
	cols[0] = "tampered"

	if Columns()[0] != ColumnInitialContact {
		t.Error("mutating the result of Columns() changed the enumeration")
	}
}

func TestParseColumn(t *testing.T) {
	c, err := ParseColumn("venda_andamento")
	if err != nil {
		t.Fatalf("ParseColumn returned error: %v", err)
	}
	if c != ColumnDealInProgress {
		t.Errorf("ParseColumn = %s, want %s", c, ColumnDealInProgress)
	}

	_, err = ParseColumn("backlog")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("ParseColumn(backlog) error = %v, want ErrUnknownColumn", err)
	}
	if Column("backlog").Index() != -1 {
		t.Error("unknown column should have index -1")
	}
}

func TestColumn_Title(t *testing.T) {
	if got := ColumnPostSale.Title(); got != "Pós-Venda" {
		t.Errorf("Title() = %q", got)
	}
	if got := Column("other").Title(); got != "other" {
		t.Errorf("Title() for unknown column = %q, want raw id", got)
	}
}

func TestColumn_UnmarshalJSON(t *testing.T) {
	var body struct {
		Column Column `json:"column"`
	}
	if err := json.Unmarshal([]byte(`{"column":"pos_venda"}`), &body); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if body.Column != ColumnPostSale {
		t.Errorf("Column = %s, want pos_venda", body.Column)
	}

	err := json.Unmarshal([]byte(`{"column":"nowhere"}`), &body)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Unmarshal of unknown column error = %v, want ErrUnknownColumn", err)
	}
}

// ============================================================================
// Move Tests
// ============================================================================

func TestMoveCommand_Validate(t *testing.T) {
	tests := []struct {
		name string
		cmd  MoveCommand
		want error
	}{
		{"valid", MoveCommand{CardID: "42", TargetColumn: ColumnProposalSent}, nil},
		{"empty id", MoveCommand{TargetColumn: ColumnProposalSent}, ErrEmptyCardID},
		{"unknown column", MoveCommand{CardID: "42", TargetColumn: "x"}, ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMoveCommand_WireBody(t *testing.T) {
	data, err := json.Marshal(MoveCommand{CardID: "42", TargetColumn: ColumnDealInProgress})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"column":"venda_andamento"}` {
		t.Errorf("body = %s", data)
	}
}

func TestMoveResult_OK(t *testing.T) {
	var missing MoveResult
	if err := json.Unmarshal([]byte(`{"other":1}`), &missing); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if missing.OK() {
		t.Error("result without success field must not be OK")
	}
	if missing.Success != nil {
		t.Error("missing success field should leave Success nil")
	}

	if !NewMoveResult(true, "").OK() {
		t.Error("explicit success should be OK")
	}
	if NewMoveResult(false, "nope").OK() {
		t.Error("explicit failure should not be OK")
	}
}

// ============================================================================
// Priority Tests
// ============================================================================

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	if err != nil || p != PriorityMedium {
		t.Errorf("ParsePriority(\"\") = %s, %v; want medium", p, err)
	}
	if p, _ := ParsePriority("high"); p != PriorityHigh {
		t.Errorf("ParsePriority(high) = %s", p)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrUnknownPriority) {
		t.Errorf("ParsePriority(urgent) error = %v", err)
	}
}

func TestBoardSnapshot_Cards(t *testing.T) {
	snap := BoardSnapshot{Columns: []ColumnCards{
		{Column: ColumnProposalSent, Cards: []*Card{{ID: "1"}, {ID: "2"}}},
	}}

	if got := len(snap.Cards(ColumnProposalSent)); got != 2 {
		t.Errorf("Cards(proposta_enviada) len = %d, want 2", got)
	}
	if snap.Cards(ColumnPostSale) != nil {
		t.Error("Cards for absent column should be nil")
	}
}

// ============================================================================
// Client Tests
// ============================================================================

func TestClient_Matches(t *testing.T) {
	c := &Client{Name: "Padaria Central", Email: "contato@padaria.com", Phone: "(11) 3333-4444", Document: "12345678000199"}

	for _, q := range []string{"", "  ", "padaria", "CENTRAL", "3333", "5678000"} {
		if !c.Matches(q) {
			t.Errorf("Matches(%q) = false, want true", q)
		}
	}
	if c.Matches("oficina") {
		t.Error("Matches(oficina) = true, want false")
	}
}

func TestFormatDocument(t *testing.T) {
	tests := map[string]string{
		"12345678901":    "123.456.789-01",
		"12345678000199": "12.345.678/0001-99",
		"123":            "123",
	}
	for in, want := range tests {
		if got := FormatDocument(in); got != want {
			t.Errorf("FormatDocument(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseClientID(t *testing.T) {
	id, err := ParseClientID(" 42 ")
	if err != nil || id != 42 {
		t.Errorf("ParseClientID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-3", "abc"} {
		if _, err := ParseClientID(bad); !errors.Is(err, ErrInvalidClientID) {
			t.Errorf("ParseClientID(%q) error = %v, want ErrInvalidClientID", bad, err)
		}
	}
}
