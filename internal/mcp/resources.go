package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         "finverse://startups",
		Name:        "Startup Discovery Feed",
		Description: "Newest startups with sector, funding progress and keywords",
		MimeType:    "text/plain",
	},
	{
		URI:         "finverse://profiles",
		Name:        "Profiles",
		Description: "People on the platform and their interests",
		MimeType:    "text/plain",
	},
	{
		URI:         "finverse://feed",
		Name:        "Social Feed",
		Description: "Latest posts with like counts",
		MimeType:    "text/plain",
	},
}

type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

type readResourceParams struct {
	URI string `json:"uri"`
}

type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
