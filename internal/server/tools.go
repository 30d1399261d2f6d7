package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "stitch_discover",
			Description: "List the images (jpg, jpeg, png, webp) in a directory in the order they would be stitched.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory holding the source images",
					},
					"sort": sortProperty(),
				},
				"required": []string{"directory"},
			},
		},
		{
			Name: "stitch_plan",
			Description: "Stack images into one tall strip and find where to cut it into pages. " +
				"Cuts land on visually uniform rows close to max_height. Returns a plan_id for stitch_export.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to read images from. Mutually exclusive with images.",
					},
					"images": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Image paths in stacking order. Mutually exclusive with directory.",
					},
					"sort": sortProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Strip width in pixels. 0 uses the narrowest source width.",
						"minimum":     0,
					},
					"ignore_unloadable": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip images that fail to load instead of failing the plan",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Ideal and largest page height in pixels. Default 5000",
						"minimum":     1,
					},
					"min_height": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest height a content-aware cut may produce. Default 1000",
						"minimum":     0,
					},
					"scan_interval": map[string]interface{}{
						"type":        "integer",
						"description": "Evaluate every Nth row. Default 5",
						"minimum":     1,
					},
					"sensitivity": map[string]interface{}{
						"type":        "integer",
						"description": "0 accepts almost any row as a cut, 255 only perfectly uniform rows. Default 220",
						"minimum":     0,
						"maximum":     255,
					},
				},
			},
		},
		{
			Name:        "stitch_export",
			Description: "Write the pages of a plan to a directory as 1.ext, 2.ext, ... zero-padded to the page count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"plan_id": map[string]interface{}{
						"type":        "string",
						"description": "Plan id returned by stitch_plan",
					},
					"output_directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write pages into",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "tiff", "jpg"},
						"description": "Output format. png and tiff are lossless",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100",
						"minimum":     1,
						"maximum":     100,
					},
					"debug": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw cut and skipped rows onto the pages",
					},
				},
				"required": []string{"plan_id"},
			},
		},
		{
			Name:        "stitch_evict",
			Description: "Release the memory held by a plan.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"plan_id": map[string]interface{}{
						"type":        "string",
						"description": "Plan id returned by stitch_plan",
					},
				},
				"required": []string{"plan_id"},
			},
		},
	}
}

func sortProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"natural", "logical"},
		"description": "File name ordering. natural compares digit runs by value (2 before 10)",
	}
}
