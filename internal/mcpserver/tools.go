package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/agent-booster/internal/booster"
	"github.com/mvp-joe/agent-booster/internal/language"
)

// editResultJSON mirrors booster.EditResult (spec.md §3) for the wire, so
// Strategy and Scores render as plain JSON rather than Go-internal types.
type editResultJSON struct {
	RequestID      string         `json:"request_id"`
	MergedCode     string         `json:"merged_code"`
	Confidence     float64        `json:"confidence"`
	Strategy       string         `json:"strategy"`
	ChunksFound    int            `json:"chunks_found"`
	SyntaxValid    bool           `json:"syntax_valid"`
	BestChunkIndex int            `json:"best_chunk_index"`
	TemplateID     string         `json:"template_id,omitempty"`
	Scores         similarityJSON `json:"scores"`
	Error          string         `json:"error,omitempty"`
}

type similarityJSON struct {
	EditDistance float64 `json:"edit_distance"`
	TokenOverlap float64 `json:"token_overlap"`
	Structural   float64 `json:"structural"`
	Total        float64 `json:"total"`
}

func toEditResultJSON(r booster.EditResult) editResultJSON {
	out := editResultJSON{
		RequestID:      r.RequestID,
		MergedCode:     r.MergedCode,
		Confidence:     r.Confidence,
		Strategy:       r.Strategy.String(),
		ChunksFound:    r.ChunksFound,
		SyntaxValid:    r.SyntaxValid,
		BestChunkIndex: r.BestChunkIndex,
		TemplateID:     r.TemplateID,
		Scores: similarityJSON{
			EditDistance: r.Scores.EditDistance,
			TokenOverlap: r.Scores.TokenOverlap,
			Structural:   r.Scores.Structural,
			Total:        r.Scores.Total,
		},
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// requestFromArgs builds a booster.EditRequest out of the tool call's
// argument map. An omitted confidence_threshold or max_chunks is left at
// zero, which booster.ApplyEdit itself replaces with spec.md §3's stated
// defaults (0.5 and 100).
func requestFromArgs(argsMap map[string]interface{}) (booster.EditRequest, error) {
	original, _ := argsMap["original_code"].(string)
	edit, _ := argsMap["edit_snippet"].(string)
	langStr, ok := argsMap["language"].(string)
	if !ok || langStr == "" {
		return booster.EditRequest{}, fmt.Errorf("language parameter is required")
	}

	req := booster.EditRequest{
		OriginalCode: original,
		EditSnippet:  edit,
		Language:     language.Parse(langStr),
	}
	if id, ok := argsMap["request_id"].(string); ok {
		req.RequestID = id
	}
	if t, ok := argsMap["confidence_threshold"].(float64); ok {
		req.ConfidenceThreshold = t
	}
	if m, ok := argsMap["max_chunks"].(float64); ok {
		req.MaxChunks = int(m)
	}
	if a, ok := argsMap["use_ast_extractor"].(bool); ok {
		req.UseASTExtractor = a
	}
	return req, nil
}

func requestSchemaFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("original_code", mcp.Description("The full original source text")),
		mcp.WithString("edit_snippet", mcp.Required(), mcp.Description("The edit snippet to merge into original_code")),
		mcp.WithString("language", mcp.Required(), mcp.Description("javascript, typescript, python, rust, go, java, c, or cpp")),
		mcp.WithString("request_id", mcp.Description("Caller-supplied correlation id; a UUID is generated if omitted")),
		mcp.WithNumber("confidence_threshold", mcp.Description("Scores below this fall back to Append instead of InsertBefore; scores of 0.30 and above are unaffected, default 0.5")),
		mcp.WithNumber("max_chunks", mcp.Description("Maximum chunks to extract from original_code, default 100")),
		mcp.WithBoolean("use_ast_extractor", mcp.Description("Opt into the AST-backed chunk extractor where a grammar is bundled")),
	}
}

// AddApplyEditTool registers apply_edit, a thin wrapper over
// booster.Engine.ApplyEdit.
func AddApplyEditTool(s *server.MCPServer, engine *booster.Engine) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Deterministically merge one edit snippet into one source file and return the merged code with a confidence score."),
	}, requestSchemaFields()...)

	tool := mcp.NewTool("apply_edit", opts...)
	s.AddTool(tool, applyEditHandler(engine))
}

func applyEditHandler(engine *booster.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		req, err := requestFromArgs(argsMap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := engine.ApplyEdit(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.Marshal(toEditResultJSON(result))
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// AddApplyEditBatchTool registers apply_edit_batch, a thin wrapper over
// booster.Engine.Batch. All elements share the batch-scoped score cache
// booster.Batch builds internally; per-element errors (spec.md §7) surface
// as a non-empty "error" field on that element's result rather than
// failing the whole call.
func AddApplyEditBatchTool(s *server.MCPServer, engine *booster.Engine) {
	tool := mcp.NewTool(
		"apply_edit_batch",
		mcp.WithDescription("Apply a batch of edit requests in one call, sharing a similarity score cache across the batch."),
		mcp.WithArray("requests",
			mcp.Required(),
			mcp.Description("Array of apply_edit-shaped request objects")),
	)
	s.AddTool(tool, applyEditBatchHandler(engine))
}

func applyEditBatchHandler(engine *booster.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		rawRequests, ok := argsMap["requests"].([]interface{})
		if !ok || len(rawRequests) == 0 {
			return mcp.NewToolResultError("requests parameter must be a non-empty array"), nil
		}

		reqs := make([]booster.EditRequest, 0, len(rawRequests))
		for i, raw := range rawRequests {
			elemMap, ok := raw.(map[string]interface{})
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("requests[%d] is not an object", i)), nil
			}
			req, err := requestFromArgs(elemMap)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("requests[%d]: %v", i, err)), nil
			}
			reqs = append(reqs, req)
		}

		results, err := engine.Batch(ctx, reqs)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out := make([]editResultJSON, len(results))
		for i, r := range results {
			out[i] = toEditResultJSON(r)
		}

		payload, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("marshal results: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
