package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/sanitize"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/links"
	"github.com/aretw0/parley/pkg/script"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// GrammarURI is the resource describing the script grammar.
const GrammarURI = "parley://grammar"

const grammar = `Lines (one per physical line):
  [if <expr>] prefix      condition on dialogue or goto
  [do <expr>]             mutation
  # <text>                comment
  -> <node>               goto (empty target is END)
  <name>: <text>          dialogue
  <text>                  narration
  (empty)                 blank

Responses (blank lines skipped):
  [if <expr>] <prompt> -> <node>
  A response without an arrow ends the conversation.`

// toolArgs is the union of every tool argument; each tool reads its own.
type toolArgs struct {
	Text      string `mapstructure:"text"`
	Nodes     string `mapstructure:"nodes"`
	Lines     string `mapstructure:"lines"`
	Responses string `mapstructure:"responses"`
	Query     string `mapstructure:"query"`
	NodeID    string `mapstructure:"node_id"`
}

// Server exposes the script operations as MCP tools.
type Server struct {
	parser    *script.Parser
	logger    *slog.Logger
	maxSize   int
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithParser sets the parser used by the parse tools.
func WithParser(p *script.Parser) Option {
	return func(s *Server) {
		s.parser = p
	}
}

// WithLogger sets the logger for rejected calls.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMaxScriptSize caps the size in bytes of scripts sent to the parse
// tools. Zero keeps sanitize.DefaultMaxSize.
func WithMaxScriptSize(n int) Option {
	return func(s *Server) {
		s.maxSize = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		parser:    script.NewParser(),
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("parley-mcp", strings.TrimSpace(parley.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	nodesArg := mcp.WithString("nodes", mcp.Description("JSON array of nodes used to resolve and search targets (optional)"))

	s.mcpServer.AddTool(mcp.NewTool("parse_lines",
		mcp.WithDescription("Parse a dialogue script into line records."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Script text, one line per row")),
		nodesArg,
	), s.handleParseLines)

	s.mcpServer.AddTool(mcp.NewTool("parse_responses",
		mcp.WithDescription("Parse a response script into response records."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Response text, one response per row")),
		nodesArg,
	), s.handleParseResponses)

	s.mcpServer.AddTool(mcp.NewTool("render_script",
		mcp.WithDescription("Render line and/or response records back into script text."),
		mcp.WithString("lines", mcp.Description("JSON array of line records")),
		mcp.WithString("responses", mcp.Description("JSON array of response records")),
		mcp.WithString("nodes", mcp.Description("JSON array of nodes used to name targets given only by ID (optional)")),
	), s.handleRenderScript)

	s.mcpServer.AddTool(mcp.NewTool("filter_nodes",
		mcp.WithDescription("List nodes whose name or content contains the query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Case-insensitive search text")),
		mcp.WithString("nodes", mcp.Required(), mcp.Description("JSON array of nodes")),
	), s.handleFilterNodes)

	s.mcpServer.AddTool(mcp.NewTool("find_links",
		mcp.WithDescription("List the outgoing and incoming links of a node."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("ID of the node to inspect")),
		mcp.WithString("nodes", mcp.Required(), mcp.Description("JSON array of nodes")),
	), s.handleFindLinks)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GrammarURI, "Script Grammar",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GrammarURI,
				MIMEType: "text/plain",
				Text:     grammar,
			},
		}, nil
	})
}

func (s *Server) handleParseLines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, nodes, res := s.arguments(request)
	if res != nil {
		return res, nil
	}
	text, err := sanitize.Script(args.Text, s.maxSize)
	if err != nil {
		s.logger.Warn("MCP: Script rejected", "error", err, "size", len(args.Text))
		return mcp.NewToolResultError(err.Error()), nil
	}
	lines, err := s.parser.Lines(text, nodes)
	if err != nil {
		return s.parseFailure(err), nil
	}
	return jsonResult(domain.LineRecords(lines))
}

func (s *Server) handleParseResponses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, nodes, res := s.arguments(request)
	if res != nil {
		return res, nil
	}
	text, err := sanitize.Script(args.Text, s.maxSize)
	if err != nil {
		s.logger.Warn("MCP: Script rejected", "error", err, "size", len(args.Text))
		return mcp.NewToolResultError(err.Error()), nil
	}
	responses, err := s.parser.Responses(text, nodes)
	if err != nil {
		return s.parseFailure(err), nil
	}
	return jsonResult(responses)
}

func (s *Server) handleRenderScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, nodes, res := s.arguments(request)
	if res != nil {
		return res, nil
	}

	var records []domain.LineRecord
	if err := decodeJSON(args.Lines, &records); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid lines: %v", err)), nil
	}
	var responses []domain.Response
	if err := decodeJSON(args.Responses, &responses); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid responses: %v", err)), nil
	}

	node := &domain.Node{Lines: domain.LinesFromRecords(records), Responses: responses}
	return mcp.NewToolResultText(script.NodeToText(node, nodes)), nil
}

func (s *Server) handleFilterNodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, nodes, res := s.arguments(request)
	if res != nil {
		return res, nil
	}
	return jsonResult(links.Filter(args.Query, nodes))
}

// LinksResult lists the edges around one node.
type LinksResult struct {
	Outgoing []domain.Link `json:"outgoing"`
	Incoming []string      `json:"incoming"`
}

func (s *Server) handleFindLinks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, nodes, res := s.arguments(request)
	if res != nil {
		return res, nil
	}

	var node *domain.Node
	for i := range nodes {
		if nodes[i].ID == args.NodeID {
			node = &nodes[i]
			break
		}
	}
	if node == nil {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found", args.NodeID)), nil
	}

	out := LinksResult{Outgoing: []domain.Link{}, Incoming: links.Incoming(node, nodes)}
	for link := range links.Outgoing(node) {
		out.Outgoing = append(out.Outgoing, link)
	}
	return jsonResult(out)
}

// arguments decodes the call arguments and the optional nodes document.
// A non-nil result is an error to return to the client as is.
func (s *Server) arguments(request mcp.CallToolRequest) (toolArgs, []domain.Node, *mcp.CallToolResult) {
	var args toolArgs
	if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
		s.logger.Warn("MCP: Invalid arguments", "tool", request.Params.Name, "error", err)
		return args, nil, mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
	}
	var nodes []domain.Node
	if err := decodeJSON(args.Nodes, &nodes); err != nil {
		s.logger.Warn("MCP: Invalid nodes", "tool", request.Params.Name, "error", err)
		return args, nil, mcp.NewToolResultError(fmt.Sprintf("invalid nodes: %v", err))
	}
	return args, nodes, nil
}

func (s *Server) parseFailure(err error) *mcp.CallToolResult {
	var perr *domain.ParseError
	if errors.As(err, &perr) {
		return mcp.NewToolResultError(fmt.Sprintf("line %d: %s", perr.Line, perr.Message))
	}
	s.logger.Error("MCP: Parse failed", "error", err)
	return mcp.NewToolResultError(err.Error())
}

func decodeJSON(raw string, v any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
