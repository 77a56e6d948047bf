package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/store"
)

func categoryNames() []string {
	cats := journal.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = strings.ToLower(string(c))
	}
	return names
}

// RegisterAddCelebrationTool registers the add_celebration tool.
func RegisterAddCelebrationTool(s *server.MCPServer, st *store.Store) {
	addCelebration := mcp.NewTool("add_celebration",
		mcp.WithDescription("Records a new celebration (a win worth remembering)."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short title of the celebration.")),
		mcp.WithString("description", mcp.Description("Optional longer description.")),
		mcp.WithString("category", mcp.Description("Category of the celebration."), mcp.Enum(categoryNames()...), mcp.DefaultString("other")),
		mcp.WithString("date", mcp.Description("When it happened, as YYYY-MM-DD or RFC 3339. Defaults to now.")),
		mcp.WithString("media_urls", mcp.Description("Optional comma-separated list of media URLs.")),
		mcp.WithBoolean("starred", mcp.Description("Mark the celebration as starred.")),
	)
	s.AddTool(addCelebration, addCelebrationHandler(st))
}

func addCelebrationHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := argsOf(request)

		title, ok := args.stringArg("title")
		if !ok || title == "" {
			return toolError("'title' parameter is required and must be a non-empty string.")
		}
		description, _ := args.stringArg("description")

		category, ok, err := args.categoryArg("category")
		if err != nil {
			return toolError("%v", err)
		}
		if !ok {
			category = journal.CategoryOther
		}

		date, ok, err := args.dateArg("date", st.Location())
		if err != nil {
			return toolError("%v", err)
		}
		if !ok {
			date = st.Now()
		}

		media, _ := args.mediaArg("media_urls")
		starred, _ := args.boolArg("starred")

		c := journal.NewCelebration(title, description, date, category, media, starred)
		if err := journal.ValidateCelebration(c); err != nil {
			return toolError("Invalid celebration: %v", err)
		}

		st.AddCelebration(c)
		return jsonResult(c, "celebration")
	}
}

// RegisterListCelebrationsTool registers the list_celebrations tool.
func RegisterListCelebrationsTool(s *server.MCPServer, st *store.Store) {
	listCelebrations := mcp.NewTool("list_celebrations",
		mcp.WithDescription("Lists celebrations for a single day, or for a time range ending now."),
		mcp.WithString("range", mcp.Description("Time range to list."), mcp.Enum(timeRangeNames()...), mcp.DefaultString(string(journal.RangeAll))),
		mcp.WithString("date", mcp.Description("List only celebrations on this day (YYYY-MM-DD). Overrides range.")),
		mcp.WithBoolean("starred_only", mcp.Description("Only return starred celebrations.")),
	)
	s.AddTool(listCelebrations, listCelebrationsHandler(st))
}

func listCelebrationsHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := argsOf(request)

		var celebrations []journal.Celebration
		date, ok, err := args.dateArg("date", st.Location())
		if err != nil {
			return toolError("%v", err)
		}
		if ok {
			celebrations = st.CelebrationsOn(date)
		} else {
			r, err := args.rangeArg("range", journal.RangeAll)
			if err != nil {
				return toolError("%v", err)
			}
			celebrations = st.CelebrationsIn(r)
		}

		if starredOnly, _ := args.boolArg("starred_only"); starredOnly {
			filtered := celebrations[:0]
			for _, c := range celebrations {
				if c.IsStarred {
					filtered = append(filtered, c)
				}
			}
			celebrations = filtered
		}

		if len(celebrations) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(celebrations, "celebrations")
	}
}

// RegisterUpdateCelebrationTool registers the update_celebration tool.
func RegisterUpdateCelebrationTool(s *server.MCPServer, st *store.Store) {
	updateCelebration := mcp.NewTool("update_celebration",
		mcp.WithDescription("Updates fields of an existing celebration. Omitted fields are left unchanged."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the celebration.")),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("description", mcp.Description("New description. An empty string clears it.")),
		mcp.WithString("category", mcp.Description("New category."), mcp.Enum(categoryNames()...)),
		mcp.WithString("date", mcp.Description("New date as YYYY-MM-DD or RFC 3339.")),
		mcp.WithString("media_urls", mcp.Description("Replacement comma-separated list of media URLs. An empty string clears them.")),
		mcp.WithBoolean("starred", mcp.Description("New starred state.")),
	)
	s.AddTool(updateCelebration, updateCelebrationHandler(st))
}

func updateCelebrationHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := argsOf(request)

		id, err := args.idArg("id")
		if err != nil {
			return toolError("%v", err)
		}

		c, err := st.Celebration(id)
		if err != nil {
			return toolError("Celebration '%s': %v", id, err)
		}

		changed := false
		if title, ok := args.stringArg("title"); ok {
			c.Title = title
			changed = true
		}
		if description, ok := args.stringArg("description"); ok {
			c.Description = description
			changed = true
		}
		if category, ok, err := args.categoryArg("category"); err != nil {
			return toolError("%v", err)
		} else if ok {
			c.Category = category
			changed = true
		}
		if date, ok, err := args.dateArg("date", st.Location()); err != nil {
			return toolError("%v", err)
		} else if ok {
			c.Date = date
			changed = true
		}
		if media, ok := args.mediaArg("media_urls"); ok {
			c.MediaURLs = media
			changed = true
		}
		if starred, ok := args.boolArg("starred"); ok {
			c.IsStarred = starred
			changed = true
		}

		if !changed {
			return toolError("No update fields provided (use title, description, category, date, media_urls, or starred).")
		}
		if err := journal.ValidateCelebration(c); err != nil {
			return toolError("Invalid celebration: %v", err)
		}

		if !st.UpdateCelebration(c) {
			return toolError("Celebration '%s' not found during update.", id)
		}
		return jsonResult(c, "celebration")
	}
}

// RegisterDeleteCelebrationTool registers the delete_celebration tool.
func RegisterDeleteCelebrationTool(s *server.MCPServer, st *store.Store) {
	deleteCelebration := mcp.NewTool("delete_celebration",
		mcp.WithDescription("Deletes a celebration by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the celebration to delete.")),
	)
	s.AddTool(deleteCelebration, deleteCelebrationHandler(st))
}

func deleteCelebrationHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := argsOf(request).idArg("id")
		if err != nil {
			return toolError("%v", err)
		}

		if removed := st.DeleteCelebration(id); removed == 0 {
			return toolError("Celebration '%s': %v", id, store.ErrCelebrationNotFound)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Celebration '%s' deleted.", id)), nil
	}
}

// RegisterToggleStarCelebrationTool registers the toggle_star_celebration tool.
func RegisterToggleStarCelebrationTool(s *server.MCPServer, st *store.Store) {
	toggleStar := mcp.NewTool("toggle_star_celebration",
		mcp.WithDescription("Flips the starred flag of a celebration and returns the updated record."),
		mcp.WithString("id", mcp.Required(), mcp.Description("ID of the celebration.")),
	)
	s.AddTool(toggleStar, toggleStarCelebrationHandler(st))
}

func toggleStarCelebrationHandler(st *store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := argsOf(request).idArg("id")
		if err != nil {
			return toolError("%v", err)
		}

		c, ok := st.ToggleStarCelebration(id)
		if !ok {
			return toolError("Celebration '%s': %v", id, store.ErrCelebrationNotFound)
		}
		return jsonResult(c, "celebration")
	}
}
