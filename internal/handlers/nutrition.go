package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"sppgmenu/internal/catalog"
	applog "sppgmenu/internal/log"
	"sppgmenu/internal/nutrition"
)

const maxEvaluateBody = 1 << 20

type levelReference struct {
	Level            nutrition.TargetLevel `json:"level"`
	Name             string                `json:"name"`
	ServingSizeGrams float64               `json:"serving_size_grams"`
	Reference        nutrition.Reference   `json:"reference"`
}

type referencesResponse struct {
	Levels     []levelReference      `json:"levels"`
	Tolerance  nutrition.Tolerance   `json:"tolerance"`
	BonusBands []nutrition.BonusBand `json:"bonus_bands"`
}

// References lists the AKG table with the tolerance and scoring constants.
func References(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	resp := referencesResponse{
		Tolerance:  nutrition.ComplianceTolerance,
		BonusBands: nutrition.BalanceBonusBands,
	}
	for _, level := range nutrition.Levels() {
		ref, err := nutrition.ReferenceFor(level)
		if err != nil {
			writeCatalogError(w, r, err)
			return
		}
		resp.Levels = append(resp.Levels, levelReference{
			Level:            level,
			Name:             level.Name(),
			ServingSizeGrams: nutrition.ServingSizeGrams(level),
			Reference:        ref,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type evaluateRequest struct {
	TargetLevel string                     `json:"target_level"`
	Servings    float64                    `json:"servings"`
	Items       []nutrition.SelectableItem `json:"items"`
	Refs        []string                   `json:"refs"`
}

type evaluateResponse struct {
	EvaluationID string                     `json:"evaluation_id"`
	EvaluatedAt  time.Time                  `json:"evaluated_at"`
	SppgCode     string                     `json:"sppg,omitempty"`
	Items        []nutrition.SelectableItem `json:"items"`
	Summary      nutrition.Summary          `json:"summary"`
	Servings     float64                    `json:"servings,omitempty"`
	Batch        *nutrition.Aggregation     `json:"batch,omitempty"`
}

var errNegativeServings = errors.New("handlers: servings must not be negative")

// Evaluate aggregates inline items and catalog references and scores them
// against the requested target level.
func Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEvaluateBody)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Request body must be a JSON evaluation request.")
		return
	}

	level, err := resolveLevel(req.TargetLevel)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	if req.Servings < 0 {
		writeJSONError(w, http.StatusBadRequest, errNegativeServings.Error())
		return
	}
	if err := nutrition.ValidateItems(req.Items); err != nil {
		writeCatalogError(w, r, err)
		return
	}

	refs, err := catalog.ParseRefs(req.Refs)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	sppg := sppgCode(r)
	loaded, err := loadItems(r.Context(), sppg, refs)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	items := make([]nutrition.SelectableItem, 0, len(req.Items)+len(loaded))
	items = append(items, req.Items...)
	items = append(items, loaded...)

	resp, err := evaluate(r, sppg, items, level, req.Servings)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func evaluate(r *http.Request, sppg string, items []nutrition.SelectableItem, level nutrition.TargetLevel, servings float64) (evaluateResponse, error) {
	if len(items) > nutrition.MaxItemsPerSelection {
		return evaluateResponse{}, nutrition.ErrTooManyItems
	}

	id := newEvaluationID()
	ctx := applog.WithAttrs(r.Context(), "evaluation_id", id, "target_level", string(level))

	summary, err := nutrition.Summarize(items, level)
	if err != nil {
		return evaluateResponse{}, err
	}

	resp := evaluateResponse{
		EvaluationID: id,
		EvaluatedAt:  nowFunc().UTC(),
		SppgCode:     sppg,
		Items:        items,
		Summary:      summary,
	}
	if servings > 0 {
		batch := summary.Aggregation.Scaled(servings)
		resp.Servings = servings
		resp.Batch = &batch
	}

	applog.Info(ctx, "selection evaluated",
		"items", len(items),
		"overall", string(summary.Compliance.Overall),
		"score", summary.Scorecard.Score,
		"grade", string(summary.Scorecard.Grade.Grade),
	)
	return resp, nil
}
