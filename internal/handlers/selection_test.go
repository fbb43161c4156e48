package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"sppgmenu/internal/db/mock"
	"sppgmenu/internal/nutrition"
)

func postSelection(sppg string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/app/selection", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sppg != "" {
		req.Header.Set(sppgHeader, sppg)
	}
	return req
}

func decodeSelection(t *testing.T, w *httptest.ResponseRecorder) selectionResponse {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp selectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestSelectionFlow(t *testing.T) {
	sm := scs.New()
	configureForTest(t, sm, Dependencies{Items: mockCatalog(t)})
	client := newSessionClient(t, sm, Selection)

	resp := decodeSelection(t, client.do(httptest.NewRequest(http.MethodGet, "/app/selection", nil)))
	if len(resp.Refs) != 0 || resp.Level != nutrition.LevelSD {
		t.Fatalf("initial selection = %+v", resp)
	}

	form := url.Values{"ref": {"menu:3", "recipe:1"}, "target_level": {"SMP"}}
	resp = decodeSelection(t, client.do(postSelection(mock.PrimarySppgCode, form)))
	if resp.Sppg != mock.PrimarySppgCode || resp.Level != nutrition.LevelSMP {
		t.Fatalf("selection = %+v", resp)
	}
	if strings.Join(resp.Refs, ",") != "menu:3,recipe:1" || len(resp.Items) != 2 {
		t.Fatalf("refs = %v items = %d", resp.Refs, len(resp.Items))
	}

	// Adding the same menu again counts it twice.
	resp = decodeSelection(t, client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:3"}})))
	if strings.Join(resp.Refs, ",") != "menu:3,recipe:1,menu:3" {
		t.Fatalf("refs after duplicate = %v", resp.Refs)
	}

	resp = decodeSelection(t, client.do(httptest.NewRequest(http.MethodDelete, "/app/selection?ref=menu:3", nil)))
	if strings.Join(resp.Refs, ",") != "recipe:1,menu:3" {
		t.Fatalf("refs after removing one = %v", resp.Refs)
	}

	resp = decodeSelection(t, client.do(httptest.NewRequest(http.MethodDelete, "/app/selection", nil)))
	if len(resp.Refs) != 0 || resp.Level != nutrition.LevelSMP {
		t.Fatalf("cleared selection = %+v", resp)
	}
}

func TestSelectionRejectsForeignItems(t *testing.T) {
	sm := scs.New()
	configureForTest(t, sm, Dependencies{Items: mockCatalog(t)})
	client := newSessionClient(t, sm, Selection)

	w := client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:7"}}))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	resp := decodeSelection(t, client.do(httptest.NewRequest(http.MethodGet, "/app/selection", nil)))
	if len(resp.Refs) != 0 {
		t.Fatalf("foreign ref stored: %v", resp.Refs)
	}
}

func TestSelectionRejectsDraftAndOverfullSelections(t *testing.T) {
	sm := scs.New()
	configureForTest(t, sm, Dependencies{Items: mockCatalog(t)})
	client := newSessionClient(t, sm, Selection)

	if w := client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:6"}})); w.Code != http.StatusNotFound {
		t.Fatalf("draft menu status = %d, want 404", w.Code)
	}

	full := make([]string, nutrition.MaxItemsPerSelection)
	for i := range full {
		full[i] = "menu:1"
	}
	resp := decodeSelection(t, client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": full})))
	if len(resp.Refs) != nutrition.MaxItemsPerSelection {
		t.Fatalf("refs = %d, want %d", len(resp.Refs), nutrition.MaxItemsPerSelection)
	}

	if w := client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:3"}})); w.Code != http.StatusBadRequest {
		t.Fatalf("eleventh item status = %d, want 400", w.Code)
	}
	resp = decodeSelection(t, client.do(httptest.NewRequest(http.MethodGet, "/app/selection", nil)))
	if len(resp.Refs) != nutrition.MaxItemsPerSelection {
		t.Fatalf("rejected add changed the selection: %v", resp.Refs)
	}
}

func TestSelectionSwitchingSppgClearsItems(t *testing.T) {
	sm := scs.New()
	configureForTest(t, sm, Dependencies{Items: mockCatalog(t)})
	client := newSessionClient(t, sm, Selection)

	decodeSelection(t, client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:1"}})))
	resp := decodeSelection(t, client.do(postSelection(mock.SecondarySppgCode, url.Values{"ref": {"menu:7"}})))

	if resp.Sppg != mock.SecondarySppgCode || strings.Join(resp.Refs, ",") != "menu:7" {
		t.Fatalf("selection after switch = %+v", resp)
	}
}

func TestSelectionHTMXPartial(t *testing.T) {
	sm := scs.New()
	configureForTest(t, sm, Dependencies{Items: mockCatalog(t)})
	client := newSessionClient(t, sm, Selection)

	req := postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:3"}})
	req.Header.Set("HX-Request", "true")
	w := client.do(req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="selection-panel"`) || !strings.Contains(body, `data-ref="menu:3"`) {
		t.Fatalf("unexpected partial: %s", body)
	}
}

func TestSelectionWithoutSessions(t *testing.T) {
	configureForTest(t, nil, Dependencies{})

	w := httptest.NewRecorder()
	Selection(w, httptest.NewRequest(http.MethodGet, "/app/selection", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestSelectionEvaluateAndReport(t *testing.T) {
	sm := scs.New()
	configureForTest(t, sm, Dependencies{Items: mockCatalog(t)})

	mux := http.NewServeMux()
	mux.HandleFunc("/app/selection", Selection)
	mux.HandleFunc("/app/selection/evaluate", SelectionEvaluate)
	mux.HandleFunc("/app/selection/report", SelectionReport)
	client := newSessionClient(t, sm, mux.ServeHTTP)

	decodeSelection(t, client.do(postSelection(mock.PrimarySppgCode, url.Values{"ref": {"menu:3"}, "target_level": {"SD"}})))

	w := client.do(httptest.NewRequest(http.MethodGet, "/app/selection/evaluate", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("evaluate status = %d body = %s", w.Code, w.Body.String())
	}
	var resp evaluateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Summary.Compliance.Percentages[nutrition.Calories] != 30 {
		t.Fatalf("calories percentage = %d", resp.Summary.Compliance.Percentages[nutrition.Calories])
	}

	w = client.do(httptest.NewRequest(http.MethodGet, "/app/selection/report", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<html", "Laporan Kepatuhan AKG", `data-evaluation-id="eval-test"`, "Rp 8.000", "Kalori terlalu rendah"} {
		if !strings.Contains(body, want) {
			t.Fatalf("report missing %q", want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/app/selection/report", nil)
	req.Header.Set("HX-Request", "true")
	body = client.do(req).Body.String()
	if strings.Contains(body, "<html") || !strings.Contains(body, `id="compliance-report"`) {
		t.Fatalf("htmx report should be a fragment: %.200s", body)
	}
}
