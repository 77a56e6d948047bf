package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

func timeRangeNames() []string {
	ranges := journal.TimeRanges()
	names := make([]string, len(ranges))
	for i, r := range ranges {
		names[i] = string(r)
	}
	return names
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Jubiland MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_jubiland"), nil
}

// RegisterLogMoodTool registers the log_mood tool.
func RegisterLogMoodTool(s *server.MCPServer, st *store.Store) {
	logMood := mcp.NewTool("log_mood",
		mcp.WithDescription("Records a mood rating (1-5) for a day. By default the first entry already on that day is updated; set append to add another entry instead."),
		mcp.WithNumber("rating", mcp.Required(), mcp.Description("Mood rating from 1 (awful) to 5 (great). Out-of-range values are clamped.")),
		mcp.WithString("note", mcp.Description("Optional note about the day.")),
		mcp.WithString("date", mcp.Description("Day of the mood as YYYY-MM-DD or RFC 3339. Defaults to now.")),
		mcp.WithBoolean("append", mcp.Description("Always add a new entry instead of updating the day's existing one.")),
	)
	s.AddTool(logMood, logMoodHandler(st))
}

func logMoodHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := argsOf(request)

		rating, ok, err := args.intArg("rating")
		if err != nil {
			return toolError("%v", err)
		}
		if !ok {
			return toolError("'rating' parameter is required.")
		}

		note, _ := args.stringArg("note")
		date, ok, err := args.dateArg("date", st.Location())
		if err != nil {
			return toolError("%v", err)
		}
		if !ok {
			date = st.Now()
		}

		entry := journal.NewMoodEntry(date, rating, note)
		if err := journal.ValidateMoodEntry(entry); err != nil {
			return toolError("Invalid mood entry: %v", err)
		}

		if appendEntry, _ := args.boolArg("append"); appendEntry {
			st.AddMoodEntry(entry)
		} else {
			entry = st.SaveMoodForDay(date, rating, note)
		}
		return jsonResult(entry, "mood entry")
	}
}

// RegisterListMoodEntriesTool registers the list_mood_entries tool.
func RegisterListMoodEntriesTool(s *server.MCPServer, st *store.Store) {
	listMoods := mcp.NewTool("list_mood_entries",
		mcp.WithDescription("Lists mood entries for a single day, or for a time range ending now."),
		mcp.WithString("range", mcp.Description("Time range to list."), mcp.Enum(timeRangeNames()...), mcp.DefaultString(string(journal.RangeAll))),
		mcp.WithString("date", mcp.Description("List only entries on this day (YYYY-MM-DD). Overrides range.")),
	)
	s.AddTool(listMoods, listMoodEntriesHandler(st))
}

func listMoodEntriesHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := argsOf(request)

		var entries []journal.MoodEntry
		date, ok, err := args.dateArg("date", st.Location())
		if err != nil {
			return toolError("%v", err)
		}
		if ok {
			entries = st.MoodEntriesOn(date)
		} else {
			r, err := args.rangeArg("range", journal.RangeAll)
			if err != nil {
				return toolError("%v", err)
			}
			entries = st.MoodEntriesIn(r)
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(entries, "mood entries")
	}
}

// RegisterUpdateMoodEntryTool registers the update_mood_entry tool.
func RegisterUpdateMoodEntryTool(s *server.MCPServer, st *store.Store) {
	updateMood := mcp.NewTool("update_mood_entry",
		mcp.WithDescription("Updates the rating, note or date of an existing mood entry."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the mood entry.")),
		mcp.WithNumber("rating", mcp.Description("New rating from 1 to 5.")),
		mcp.WithString("note", mcp.Description("New note. An empty string clears it.")),
		mcp.WithString("date", mcp.Description("New date as YYYY-MM-DD or RFC 3339.")),
	)
	s.AddTool(updateMood, updateMoodEntryHandler(st))
}

func updateMoodEntryHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := argsOf(request)

		id, err := args.idArg("id")
		if err != nil {
			return toolError("%v", err)
		}

		entry, err := st.MoodEntry(id)
		if err != nil {
			return toolError("Mood entry '%s': %v", id, err)
		}

		changed := false
		if rating, ok, err := args.intArg("rating"); err != nil {
			return toolError("%v", err)
		} else if ok {
			entry.Rating = journal.ClampRating(rating)
			changed = true
		}
		if note, ok := args.stringArg("note"); ok {
			entry.Note = note
			changed = true
		}
		if date, ok, err := args.dateArg("date", st.Location()); err != nil {
			return toolError("%v", err)
		} else if ok {
			entry.Date = date
			changed = true
		}

		if !changed {
			return toolError("No update fields provided (use rating, note, or date).")
		}
		if err := journal.ValidateMoodEntry(entry); err != nil {
			return toolError("Invalid mood entry: %v", err)
		}

		if !st.UpdateMoodEntry(entry) {
			return toolError("Mood entry '%s' not found during update.", id)
		}
		return jsonResult(entry, "mood entry")
	}
}

// RegisterDeleteMoodEntryTool registers the delete_mood_entry tool.
func RegisterDeleteMoodEntryTool(s *server.MCPServer, st *store.Store) {
	deleteMood := mcp.NewTool("delete_mood_entry",
		mcp.WithDescription("Deletes a mood entry by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the mood entry to delete.")),
	)
	s.AddTool(deleteMood, deleteMoodEntryHandler(st))
}

func deleteMoodEntryHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := argsOf(request).idArg("id")
		if err != nil {
			return toolError("%v", err)
		}

		if removed := st.DeleteMoodEntry(id); removed == 0 {
			return toolError("Mood entry '%s': %v", id, store.ErrMoodEntryNotFound)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Mood entry '%s' deleted.", id)), nil
	}
}

// RegisterGetInsightsTool registers the get_insights tool.
func RegisterGetInsightsTool(s *server.MCPServer, st *store.Store) {
	insights := mcp.NewTool("get_insights",
		mcp.WithDescription("Returns the average mood, rating distribution and celebration count for a time range ending now."),
		mcp.WithString("range", mcp.Description("Time range to summarize."), mcp.Enum(timeRangeNames()...), mcp.DefaultString(string(journal.RangeWeek))),
	)
	s.AddTool(insights, getInsightsHandler(st))
}

func getInsightsHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := argsOf(request).rangeArg("range", journal.RangeWeek)
		if err != nil {
			return toolError("%v", err)
		}
		return jsonResult(st.Insights(r), "insights")
	}
}
