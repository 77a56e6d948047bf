package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/unowned-ai/jubiland/pkg/journal"
	"github.com/unowned-ai/jubiland/pkg/utils"
)

type toolArgs map[string]any

func argsOf(request mcp.CallToolRequest) toolArgs {
	return toolArgs(request.Params.Arguments)
}

// stringArg returns the trimmed string value for key. ok is false when the
// argument is absent or not a string.
func (a toolArgs) stringArg(key string) (string, bool) {
	v, ok := a[key].(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (a toolArgs) boolArg(key string) (bool, bool) {
	v, ok := a[key].(bool)
	return v, ok
}

// intArg accepts JSON numbers and numeric strings, rounding to the nearest
// integer.
func (a toolArgs) intArg(key string) (int, bool, error) {
	switch v := a[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return int(math.Round(v)), true, nil
	case int:
		return v, true, nil
	case string:
		var n float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &n); err != nil {
			return 0, false, fmt.Errorf("'%s' must be a number, got %q", key, v)
		}
		return int(math.Round(n)), true, nil
	default:
		return 0, false, fmt.Errorf("'%s' must be a number", key)
	}
}

func (a toolArgs) idArg(key string) (uuid.UUID, error) {
	s, ok := a.stringArg(key)
	if !ok || s == "" {
		return uuid.Nil, fmt.Errorf("'%s' parameter is required and must be a UUID string", key)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid '%s' %q: %w", key, s, err)
	}
	return id, nil
}

// dateArg parses an optional date given as YYYY-MM-DD (noon in loc) or
// RFC 3339. ok is false when the argument is absent or empty.
func (a toolArgs) dateArg(key string, loc *time.Location) (time.Time, bool, error) {
	s, ok := a.stringArg(key)
	if !ok || s == "" {
		return time.Time{}, false, nil
	}
	t, err := utils.ParseDateInput(s, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid '%s': %w", key, err)
	}
	return t, true, nil
}

func (a toolArgs) rangeArg(key string, fallback journal.TimeRange) (journal.TimeRange, error) {
	s, ok := a.stringArg(key)
	if !ok || s == "" {
		return fallback, nil
	}
	return journal.ParseTimeRange(s)
}

func (a toolArgs) categoryArg(key string) (journal.Category, bool, error) {
	s, ok := a.stringArg(key)
	if !ok || s == "" {
		return "", false, nil
	}
	c, err := journal.ParseCategory(s)
	if err != nil {
		return "", false, err
	}
	return c, true, nil
}

// mediaArg splits a comma or newline separated list of URLs.
func (a toolArgs) mediaArg(key string) ([]string, bool) {
	s, ok := a.stringArg(key)
	if !ok {
		return nil, false
	}
	return utils.SplitList(s), true
}

func jsonResult(v any, what string) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize %s to JSON: %v", what, err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(format string, args ...any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}
