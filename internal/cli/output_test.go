package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/funil/internal/models"
)

// ============================================================================
// Helpers
// ============================================================================

type mockDataWithoutID struct {
	Name  string
	Value int
}

func newTestFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, data)
	}
	return result
}

// ============================================================================
// Success Tests
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)

	card := &models.Card{ID: "c-1", Title: "Seguro Auto", Column: models.ColumnProposalSent}
	if err := f.Success(card); err != nil {
		t.Fatalf("Success returned error: %v", err)
	}

	result := decode(t, out.Bytes())
	if result["success"] != true {
		t.Errorf("success = %v, want true", result["success"])
	}
	data := result["data"].(map[string]any)
	if data["id"] != "c-1" || data["column"] != "proposta_enviada" {
		t.Errorf("data = %v", data)
	}
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"card prints id", &models.Card{ID: "c-9"}, "c-9\n"},
		{"no id prints nothing", mockDataWithoutID{Name: "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, _ := newTestFormatter(false, true)
			if err := f.Success(tt.data); err != nil {
				t.Fatalf("Success returned error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestOutputFormatter_QuietTakesPrecedenceOverJSON(t *testing.T) {
	f, out, _ := newTestFormatter(true, true)
	if err := f.Success(&models.Card{ID: "c-2"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "c-2\n" {
		t.Errorf("output = %q, want bare id", out.String())
	}
}

func TestOutputFormatter_Success_HumanReadable(t *testing.T) {
	f, out, _ := newTestFormatter(false, false)

	snap := models.BoardSnapshot{Columns: []models.ColumnCards{
		{Column: models.ColumnDealClosed, Cards: []*models.Card{{ID: "c-3", Title: "Frota"}}},
	}}
	if err := f.Success(snap); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Venda Concluída (1)", "Frota", "c-3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := f.Success(mockDataWithoutID{Name: "other", Value: 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Name:other") {
		t.Errorf("fallback output = %q", out.String())
	}
}

func TestOutputFormatter_Message(t *testing.T) {
	f, out, _ := newTestFormatter(false, false)
	if err := f.Message("Cartão %s movido", "c-1"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cartão c-1 movido") {
		t.Errorf("output = %q", out.String())
	}

	f, out, _ = newTestFormatter(true, false)
	_ = f.Message("hidden")
	if out.Len() != 0 {
		t.Errorf("JSON mode printed a message: %q", out.String())
	}
}

// ============================================================================
// Error Tests
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	f, out, errOut := newTestFormatter(true, false)

	if err := f.ErrorWithSuggestion("CARD_NOT_FOUND", "card c-1 not found", "run funil card list"); err != nil {
		t.Fatal(err)
	}
	if errOut.Len() != 0 {
		t.Errorf("JSON errors must go to stdout, stderr got %q", errOut.String())
	}

	result := decode(t, out.Bytes())
	if result["success"] != false {
		t.Errorf("success = %v, want false", result["success"])
	}
	errData := result["error"].(map[string]any)
	if errData["code"] != "CARD_NOT_FOUND" || errData["suggestion"] != "run funil card list" {
		t.Errorf("error = %v", errData)
	}
}

func TestOutputFormatter_Error_OmitsEmptySuggestion(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)
	if err := f.Error("ERROR", "boom"); err != nil {
		t.Fatal(err)
	}
	errData := decode(t, out.Bytes())["error"].(map[string]any)
	if _, ok := errData["suggestion"]; ok {
		t.Error("suggestion key should be omitted when empty")
	}
}

func TestOutputFormatter_Error_HumanReadable(t *testing.T) {
	f, out, errOut := newTestFormatter(false, false)

	if err := f.ErrorWithSuggestion("X", "server unreachable", "start funil serve"); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("human errors must go to stderr, stdout got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "server unreachable") || !strings.Contains(errOut.String(), "start funil serve") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)

	err := f.Fail(models.ErrCardNotFound)

	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fail returned %T, want *ExitCodeError", err)
	}
	if exitErr.Code != ExitNotFound {
		t.Errorf("exit code = %d, want %d", exitErr.Code, ExitNotFound)
	}
	if !errors.Is(err, models.ErrCardNotFound) {
		t.Error("Fail must keep the original error reachable")
	}
	if decode(t, out.Bytes())["error"].(map[string]any)["code"] != "CARD_NOT_FOUND" {
		t.Errorf("output = %s", out.String())
	}
}
