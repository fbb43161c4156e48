package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"sppgmenu/internal/catalog"
	applog "sppgmenu/internal/log"
	"sppgmenu/internal/nutrition"
)

const (
	toolEvaluateMenu = "evaluate_menu"
	toolAKGReference = "akg_reference"
)

type evaluateMenuParams struct {
	Sppg        string                     `json:"sppg"`
	TargetLevel string                     `json:"target_level"`
	Refs        []string                   `json:"refs"`
	Items       []nutrition.SelectableItem `json:"items"`
}

type akgReferenceParams struct {
	TargetLevel string `json:"target_level"`
}

type mcpToolHandler func(r *http.Request, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

var mcpTools = map[string]mcpToolHandler{
	toolEvaluateMenu: handleEvaluateMenuTool,
	toolAKGReference: handleAKGReferenceTool,
}

// MCP answers Model Context Protocol tools/call payloads over plain HTTP POST.
func MCP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEvaluateBody)).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := mcpTools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(r, &request)
	if err != nil {
		status, message := catalogErrorStatus(err)
		if status == http.StatusInternalServerError {
			applog.Error(r.Context(), "mcp tool failed", "tool", request.Name, "error", err)
		} else {
			applog.Warn(r.Context(), "mcp tool rejected", "tool", request.Name, "error", err)
		}
		http.Error(w, message, status)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func handleEvaluateMenuTool(r *http.Request, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params evaluateMenuParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if err := nutrition.ValidateItems(params.Items); err != nil {
		return nil, err
	}

	level, err := resolveLevel(params.TargetLevel)
	if err != nil {
		return nil, err
	}
	refs, err := catalog.ParseRefs(params.Refs)
	if err != nil {
		return nil, err
	}
	loaded, err := loadItems(r.Context(), params.Sppg, refs)
	if err != nil {
		return nil, err
	}

	items := append(append([]nutrition.SelectableItem{}, params.Items...), loaded...)
	resp, err := evaluate(r, params.Sppg, items, level, 0)
	if err != nil {
		return nil, err
	}
	return textResult(resp)
}

func handleAKGReferenceTool(_ *http.Request, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params akgReferenceParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	level, err := resolveLevel(params.TargetLevel)
	if err != nil {
		return nil, err
	}
	ref, err := nutrition.ReferenceFor(level)
	if err != nil {
		return nil, err
	}
	return textResult(levelReference{
		Level:            level,
		Name:             level.Name(),
		ServingSizeGrams: nutrition.ServingSizeGrams(level),
		Reference:        ref,
	})
}

// extractParams round-trips the loosely typed arguments map into target.
func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidToolParams, err)
	}
	return nil
}

func textResult(payload any) (*protocol.CallToolResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(raw),
			},
		},
	}, nil
}
