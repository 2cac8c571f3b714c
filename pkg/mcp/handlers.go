package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/unowned-ai/ktl/pkg/db"
	"github.com/unowned-ai/ktl/pkg/journal"
	"github.com/unowned-ai/ktl/pkg/records"
	"github.com/unowned-ai/ktl/pkg/sets"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong_ktl' to check if the ktl MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_ktl"), nil
}

// TableInfo describes one table of the loaded store.
type TableInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// RegisterListTablesTool registers the list_tables tool.
func RegisterListTablesTool(s *server.MCPServer, store *journal.Store) {
	listTablesTool := mcp.NewTool("list_tables",
		mcp.WithDescription("Lists the tables of the loaded training journal with their columns and row counts. Use it before writing a query."),
	)
	s.AddTool(listTablesTool, listTablesHandler(store))
}

func listTablesHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tables := make([]TableInfo, 0, len(db.Tables))
		for _, name := range db.Tables {
			// Table names come from db.Tables, never from the request.
			cols, err := store.Query(ctx, "SELECT * FROM "+name+" LIMIT 0")
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to describe table %s: %v", name, err)), nil
			}
			count, err := store.Query(ctx, "SELECT COUNT(*) FROM "+name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to count table %s: %v", name, err)), nil
			}
			n, _ := count.Rows[0][0].(int64)
			tables = append(tables, TableInfo{Name: name, Columns: cols.Columns, Rows: int(n)})
		}
		return jsonResult(tables, "tables")
	}
}

// RegisterQueryTool registers the query tool.
func RegisterQueryTool(s *server.MCPServer, store *journal.Store) {
	queryTool := mcp.NewTool("query",
		mcp.WithDescription("Runs a read-only SQL query (SQLite dialect) against the loaded training journal and returns the columns and rows as JSON."),
		mcp.WithString("sql", mcp.Required(), mcp.Description("The SELECT statement to run.")),
	)
	s.AddTool(queryTool, queryHandler(store))
}

func queryHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, ok := request.Params.Arguments["sql"].(string)
		if !ok || strings.TrimSpace(query) == "" {
			return mcp.NewToolResultError("'sql' parameter is required and must be a non-empty string."), nil
		}

		result, err := store.Query(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
		}
		return jsonResult(result, "query result")
	}
}

// RegisterListExercisesTool registers the list_exercises tool.
func RegisterListExercisesTool(s *server.MCPServer, store *journal.Store) {
	listExercisesTool := mcp.NewTool("list_exercises",
		mcp.WithDescription("Lists the exercise catalogue: name, type (strength or distance-cardio) and tags."),
	)
	s.AddTool(listExercisesTool, listExercisesHandler(store))
}

func listExercisesHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		exercises, err := store.Exercises(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list exercises: %v", err)), nil
		}
		if len(exercises) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(exercises, "exercises")
	}
}

// ExerciseHistory is the exercise_history tool result. Exactly one of the set
// lists is filled, depending on the exercise type.
type ExerciseHistory struct {
	Exercise      records.Exercise       `json:"exercise"`
	StrengthSets  []records.StrengthSet  `json:"strength_sets,omitempty"`
	EnduranceSets []records.EnduranceSet `json:"endurance_sets,omitempty"`
}

// RegisterExerciseHistoryTool registers the exercise_history tool.
func RegisterExerciseHistoryTool(s *server.MCPServer, store *journal.Store) {
	historyTool := mcp.NewTool("exercise_history",
		mcp.WithDescription("Returns every logged set of one exercise in date order."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name as defined in the catalogue.")),
	)
	s.AddTool(historyTool, exerciseHistoryHandler(store))
}

func exerciseHistoryHandler(store *journal.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, ok := request.Params.Arguments["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("'name' parameter is required and must be a non-empty string."), nil
		}

		exercise, err := records.GetExercise(ctx, store.DB(), name)
		if errors.Is(err, records.ErrExerciseNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Exercise '%s' not found.", name)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving exercise '%s': %v", name, err)), nil
		}

		kind, err := sets.ParseKind(exercise.Type)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Exercise '%s' has an invalid type: %v", name, err)), nil
		}

		history := ExerciseHistory{Exercise: exercise}
		switch kind {
		case sets.Strength:
			history.StrengthSets, err = records.ListStrengthSets(ctx, store.DB(), name)
		case sets.DistanceCardio:
			history.EnduranceSets, err = records.ListEnduranceSets(ctx, store.DB(), name)
		default:
			err = fmt.Errorf("%w: %s", sets.ErrUnknownKind, kind)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list sets for '%s': %v", name, err)), nil
		}
		return jsonResult(history, "exercise history")
	}
}

// ParsedSets is the parse_sets tool result.
type ParsedSets struct {
	Type      string     `json:"type"`
	Sets      []sets.Set `json:"sets"`
	Canonical []string   `json:"canonical"`
}

// RegisterParseSetsTool registers the parse_sets tool.
func RegisterParseSetsTool(s *server.MCPServer) {
	parseSetsTool := mcp.NewTool("parse_sets",
		mcp.WithDescription("Expands set shorthand (e.g. '60kgx5x3 70kgx(5+4)' or '5km@5.5min/km+400m') into individual sets without loading anything."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Exercise type: strength or distance-cardio.")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The shorthand to expand.")),
	)
	s.AddTool(parseSetsTool, parseSetsHandler)
}

func parseSetsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ, ok := request.Params.Arguments["type"].(string)
	if !ok || typ == "" {
		return mcp.NewToolResultError("'type' parameter is required and must be a non-empty string."), nil
	}
	text, ok := request.Params.Arguments["text"].(string)
	if !ok {
		return mcp.NewToolResultError("'text' parameter is required and must be a string."), nil
	}

	kind, err := sets.ParseKind(typ)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parsed, err := sets.Parse(kind, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := ParsedSets{Type: kind.String(), Sets: parsed, Canonical: make([]string, len(parsed))}
	if out.Sets == nil {
		out.Sets = []sets.Set{}
	}
	for i, s := range parsed {
		out.Canonical[i] = s.String()
	}
	return jsonResult(out, "sets")
}
