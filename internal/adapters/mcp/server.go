package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/oncograph/paperqa/internal/core/ports"
)

// Server exposes the question answering pipeline as an MCP tool over stdio,
// so agent runtimes can query the paper graph directly.
type Server struct {
	mcpServer *server.MCPServer
	askUC     ports.QuestionAnswerer
}

func NewServer(askUC ports.QuestionAnswerer, version string) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("paperqa", version, server.WithToolCapabilities(false)),
		askUC:     askUC,
	}

	askTool := mcp.NewTool("ask_paper",
		mcp.WithDescription("Answer a question against the lung cancer research paper knowledge graph."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Natural language question about the paper."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of ranked rows to return."),
		),
	)
	s.mcpServer.AddTool(askTool, s.handleAsk)

	return s
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := request.GetInt("limit", 0)

	answer, err := s.askUC.Ask(ctx, question, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answer question: %v", err)), nil
	}

	payload, err := json.Marshal(answer)
	if err != nil {
		return nil, fmt.Errorf("encode answer: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ServeStdio blocks serving MCP requests until stdin closes or ctx is done.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}
