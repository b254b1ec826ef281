package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var poolProperty = map[string]any{
	"type":        "string",
	"enum":        []string{"startups", "profiles"},
	"description": "Which entities to match against (default from config)",
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "find_best_match",
		Description: "Find the startup or profile whose keywords overlap most with a profile's interests or an explicit keyword list. Ties go to the earliest listed candidate.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"profile": map[string]any{
					"type":        "string",
					"description": "Profile ID or name whose interests form the subject",
				},
				"keywords": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Explicit subject keywords (used instead of a profile)",
				},
				"pool": poolProperty,
			},
		},
	},
	{
		Name:        "score_candidates",
		Description: "Score every candidate in a pool against the subject keywords, in pool order.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"profile": map[string]any{
					"type":        "string",
					"description": "Profile ID or name whose interests form the subject",
				},
				"keywords": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Explicit subject keywords (used instead of a profile)",
				},
				"pool": poolProperty,
			},
		},
	},
	{
		Name:        "list_startups",
		Description: "List startups from the discovery feed, newest first.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sector": map[string]any{
					"type":        "string",
					"description": "Only startups in this sector (case-insensitive)",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "list_profiles",
		Description: "List profiles with their interests, newest first.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "search",
		Description: "Search profiles, startups and posts by name, text or keyword. Tolerates typos in names.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query text",
				},
				"kinds": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string", "enum": []string{"profile", "startup", "post"}},
					"description": "Restrict results to these entity types",
				},
			},
			"required": []string{"query"},
		},
	},
}
