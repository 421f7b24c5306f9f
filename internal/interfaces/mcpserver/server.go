package mcpserver

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

const (
	serverName    = "fpl-advisor-mcp"
	apiKeyHeader  = "X-API-Key"
	defaultMCPURL = "/mcp"
)

type Service interface {
	Recommend(ctx context.Context, input usecase.RecommendInput) (recommendation.Recommendation, error)
	ScoreAssets(ctx context.Context, gameweek int, assetIDs []int64) ([]recommendation.ScoredAsset, error)
}

type RecommendTransferArgs struct {
	AccountID int64  `json:"account_id" jsonschema:"FPL entry id of the manager"`
	Gameweek  int    `json:"gameweek,omitempty" jsonschema:"target gameweek, 0 picks the next deadline"`
	Persona   string `json:"persona,omitempty" jsonschema:"narrative voice: pundit, analyst, veteran or contrarian"`
}

type ScoreAssetsArgs struct {
	Gameweek int     `json:"gameweek,omitempty" jsonschema:"gameweek roster to score, 0 picks the next deadline"`
	AssetIDs []int64 `json:"asset_ids" jsonschema:"FPL element ids"`
}

type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type tools struct {
	service Service
	logger  *logging.Logger
}

// NewServer registers the recommend_transfer and score_assets tools.
func NewServer(service Service, version string, logger *logging.Logger) (*mcp.Server, []ToolInfo) {
	if logger == nil {
		logger = logging.Default()
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	t := &tools{service: service, logger: logger}
	registry := make([]ToolInfo, 0, 2)

	addTool(server, &registry, &mcp.Tool{
		Name:        "recommend_transfer",
		Description: "Suggest one transfer, the starting eleven, captain and vice captain for an FPL entry",
	}, t.recommendTransfer)
	addTool(server, &registry, &mcp.Tool{
		Name:        "score_assets",
		Description: "Return the out and in weights of FPL players for a gameweek",
	}, t.scoreAssets)

	return server, registry
}

func addTool[T any](server *mcp.Server, registry *[]ToolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

// NewHandler serves the MCP endpoint at path plus /healthz and /tools. When
// apiKey is empty every request is accepted.
func NewHandler(server *mcp.Server, registry []ToolInfo, path, apiKey string) http.Handler {
	if strings.TrimSpace(path) == "" {
		path = defaultMCPURL
	}
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /tools", requireAPIKey(apiKey, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tools": registry})
	})))
	mux.Handle(path, requireAPIKey(apiKey, streamable))
	return mux
}

func requireAPIKey(apiKey string, next http.Handler) http.Handler {
	expected := strings.TrimSpace(apiKey)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}
		key := strings.TrimSpace(r.Header.Get(apiKeyHeader))
		if key == "" {
			if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				key = strings.TrimSpace(authz[7:])
			}
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func toolJSON(payload any) (*mcp.CallToolResult, any, error) {
	raw, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("encode result: %w", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
