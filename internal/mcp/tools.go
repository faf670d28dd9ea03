package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"github.com/peterkuimelis/cardcrawl/internal/view"
	"go.uber.org/zap"
)

// SeedFunc supplies a seed when start_run is called without one.
type SeedFunc func() (int64, error)

// Handler owns the active session (one per stdio process) and serves the
// tools.
type Handler struct {
	engine  *combat.Engine
	logger  *zap.Logger
	hero    string
	newSeed SeedFunc

	mu     sync.Mutex
	active *Session
}

// NewHandler creates a handler that starts runs for defaultHero unless a
// tool call names another.
func NewHandler(engine *combat.Engine, logger *zap.Logger, defaultHero string, newSeed SeedFunc) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, logger: logger, hero: defaultHero, newSeed: newSeed}
}

// RegisterTools adds all run tools to the MCP server.
func (h *Handler) RegisterTools(s *server.MCPServer) {
	s.AddTool(startRunTool(), h.handleStartRun)
	s.AddTool(chooseRoomTool(), h.handleChooseRoom)
	s.AddTool(takeActionTool(), h.handleTakeAction)
	s.AddTool(autoTurnTool(), h.handleAutoTurn)
	s.AddTool(getStateTool(), h.handleGetState)
}

// --- Tool definitions ---

func startRunTool() mcp.Tool {
	return mcp.NewTool("start_run",
		mcp.WithDescription("Start a new roguelike run. Returns the hero, the first room choices and the pending decision. "+
			"Fails while a run is in progress unless restart is true."),
		mcp.WithString("hero", mcp.Description("Hero id from the content registry (e.g. 'ironclad', 'elementalist')")),
		mcp.WithNumber("seed", mcp.Description("Seed for a reproducible run; omit or 0 for a random one")),
		mcp.WithBoolean("restart", mcp.Description("Abandon the current run and start over")),
	)
}

func chooseRoomTool() mcp.Tool {
	return mcp.NewTool("choose_room",
		mcp.WithDescription("Enter one of the offered rooms. Use this when the pending decision type is 'choose_room'."),
		mcp.WithString("room", mcp.Required(), mcp.Description("Room id from the pending rooms list")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list: play a card or end the turn. "+
			"Enemies act automatically after the turn ends. Use this when the pending decision type is 'choose_action'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func autoTurnTool() mcp.Tool {
	return mcp.NewTool("auto_turn",
		mcp.WithDescription("Let the autopilot play affordable cards and end the current turn."),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current run state, accumulated events, and pending decision without acting. Read-only."),
	)
}

// --- Tool handlers ---

func (h *Handler) session() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

func (h *Handler) handleStartRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil && !request.GetBool("restart", false) {
		if resp := h.active.State(); !resp.GameOver {
			return mcp.NewToolResultError("A run is already in progress. Pass restart=true to abandon it."), nil
		}
	}

	hero := request.GetString("hero", h.hero)
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 && h.newSeed != nil {
		var err error
		if seed, err = h.newSeed(); err != nil {
			return mcp.NewToolResultErrorf("Failed to seed run: %v", err), nil
		}
	}

	sess, err := NewSession(h.engine, h.logger, hero, seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start run: %v", err), nil
	}
	h.active = sess
	return mcp.NewToolResultText(respondJSON(sess.State())), nil
}

func (h *Handler) handleChooseRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := h.session()
	if sess == nil {
		return mcp.NewToolResultError("No run is in progress. Use start_run first."), nil
	}
	resp, err := sess.ChooseRoom(request.GetString("room", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := h.session()
	if sess == nil {
		return mcp.NewToolResultError("No run is in progress. Use start_run first."), nil
	}
	resp, err := sess.TakeAction(request.GetInt("index", -1))
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleAutoTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := h.session()
	if sess == nil {
		return mcp.NewToolResultError("No run is in progress. Use start_run first."), nil
	}
	resp, err := sess.AutoTurn()
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := h.session()
	if sess == nil {
		return mcp.NewToolResultError("No run is in progress. Use start_run first."), nil
	}
	resp := sess.State()
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []view.EventView{}
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
