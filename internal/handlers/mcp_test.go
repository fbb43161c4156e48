package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sppgmenu/internal/catalog"
	"sppgmenu/internal/db/mock"
	"sppgmenu/internal/nutrition"
)

type toolResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func callTool(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	MCP(w, req)
	return w
}

func toolText(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp toolResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Content) != 1 || resp.Content[0].Type != "text" {
		t.Fatalf("content = %+v", resp.Content)
	}
	return resp.Content[0].Text
}

func TestMCPEvaluateMenu(t *testing.T) {
	configureForTest(t, nil, Dependencies{Items: mockCatalog(t)})

	body := `{"name":"evaluate_menu","arguments":{"sppg":"` + mock.PrimarySppgCode + `","target_level":"SD","refs":["menu:3"]}}`
	var resp evaluateResponse
	if err := json.Unmarshal([]byte(toolText(t, callTool(t, body))), &resp); err != nil {
		t.Fatalf("decode tool text: %v", err)
	}
	if resp.EvaluationID != "eval-test" {
		t.Fatalf("evaluation id = %q", resp.EvaluationID)
	}
	if resp.Summary.Compliance.Percentages[nutrition.Calories] != 30 {
		t.Fatalf("calories percentage = %d", resp.Summary.Compliance.Percentages[nutrition.Calories])
	}
}

func TestMCPEvaluateInlineItems(t *testing.T) {
	configureForTest(t, nil, Dependencies{})

	body := `{"name":"evaluate_menu","arguments":{"target_level":"TK","items":[{"id":"a","nutrition":{"calories":1050,"protein":30,"carbs":150,"fat":35,"fiber":12.5}}]}}`
	var resp evaluateResponse
	if err := json.Unmarshal([]byte(toolText(t, callTool(t, body))), &resp); err != nil {
		t.Fatalf("decode tool text: %v", err)
	}
	if resp.Summary.Compliance.Overall != nutrition.StatusCompliant || resp.Summary.Scorecard.Score != 100 {
		t.Fatalf("summary = %s/%d", resp.Summary.Compliance.Overall, resp.Summary.Scorecard.Score)
	}
}

func TestMCPAKGReference(t *testing.T) {
	configureForTest(t, nil, Dependencies{})

	var ref levelReference
	if err := json.Unmarshal([]byte(toolText(t, callTool(t, `{"name":"akg_reference","arguments":{"target_level":"sma"}}`))), &ref); err != nil {
		t.Fatalf("decode tool text: %v", err)
	}
	if ref.Level != nutrition.LevelSMA || ref.Reference.Calories.Max != 2500 {
		t.Fatalf("reference = %+v", ref)
	}
}

func TestMCPErrors(t *testing.T) {
	configureForTest(t, nil, Dependencies{})

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, `{`, http.StatusBadRequest},
		{"unknown tool", http.MethodPost, `{"name":"order_food","arguments":{}}`, http.StatusNotFound},
		{"bad level", http.MethodPost, `{"name":"akg_reference","arguments":{"target_level":"PAUD"}}`, http.StatusBadRequest},
		{"refs without catalog", http.MethodPost, `{"name":"evaluate_menu","arguments":{"sppg":"X","refs":["menu:1"]}}`, http.StatusServiceUnavailable},
		{"mistyped arguments", http.MethodPost, `{"name":"evaluate_menu","arguments":{"refs":"menu:1"}}`, http.StatusBadRequest},
		{"negative nutrient", http.MethodPost, `{"name":"evaluate_menu","arguments":{"items":[{"id":"a","nutrition":{"calories":-5000}}]}}`, http.StatusBadRequest},
		{"negative cost", http.MethodPost, `{"name":"evaluate_menu","arguments":{"items":[{"id":"a","nutrition":{"calories":400},"costPerPortion":-1}]}}`, http.StatusBadRequest},
		{"oversized body", http.MethodPost, `{"name":"akg_reference","arguments":{"pad":"` + strings.Repeat("a", maxEvaluateBody) + `"}}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/mcp", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			MCP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

type failingSource struct{ err error }

func (f failingSource) Load(context.Context, string, []catalog.Ref) ([]nutrition.SelectableItem, error) {
	return nil, f.err
}

func TestMCPMapsCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  catalog.Source
		refs    string
		status  int
		message string
	}{
		{"missing item", mockCatalog(t), `["menu:999"]`, http.StatusNotFound, "item not found"},
		{"draft menu", mockCatalog(t), `["menu:6"]`, http.StatusNotFound, "item not found"},
		{"database failure", failingSource{err: errors.New("connection reset")}, `["menu:1"]`, http.StatusInternalServerError, "unable to evaluate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configureForTest(t, nil, Dependencies{Items: tt.source})

			body := `{"name":"evaluate_menu","arguments":{"sppg":"` + mock.PrimarySppgCode + `","refs":` + tt.refs + `}}`
			w := callTool(t, body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.message) {
				t.Fatalf("body = %q, want it to mention %q", w.Body.String(), tt.message)
			}
			if strings.Contains(w.Body.String(), "connection reset") {
				t.Fatal("internal error leaked to the client")
			}
		})
	}
}

func TestMCPNamesInvalidField(t *testing.T) {
	configureForTest(t, nil, Dependencies{})

	w := callTool(t, `{"name":"evaluate_menu","arguments":{"items":[{"id":"a","nutrition":{"calories":400}},{"id":"b","nutrition":{"protein":-3}}]}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "items[1].nutrition.protein") {
		t.Fatalf("body = %q, want the offending field", w.Body.String())
	}
}
