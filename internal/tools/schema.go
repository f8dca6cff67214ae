package tools

// JSON schema helpers for tool definitions.

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string, enum ...string) map[string]interface{} {
	prop := map[string]interface{}{
		"type":        "string",
		"description": description,
	}
	if len(enum) > 0 {
		prop["enum"] = enum
	}
	return prop
}

func limitProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Maximum number of results (default 10)",
		"default":     10,
	}
}

func orderProp() map[string]interface{} {
	return stringProp("Sort order (default desc)", "asc", "desc")
}
