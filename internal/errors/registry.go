package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing table errors (E101-E199)
	// ============================================

	"E101": {
		Category:   CategoryTable,
		Message:    "Duplicate route id",
		Suggestion: "Give each route type a distinct RouteName() or register it only once",
	},
	"E102": {
		Category:   CategoryTable,
		Message:    "Blank route id",
		Suggestion: "Serializers must declare a non-empty route id",
	},
	"E103": {
		Category: CategoryTable,
		Message:  "Route registered without a serializer",
	},
	"E104": {
		Category:   CategoryTable,
		Message:    "Invalid route type",
		Suggestion: "Route types must be structs embedding deeplink.Base or deeplink.Internal",
	},
	"E105": {
		Category:   CategoryTable,
		Message:    "Path parameter declared twice",
		Suggestion: "Use distinct {name} placeholders within one pattern",
	},

	// ============================================
	// Configuration errors (E201-E299)
	// ============================================

	"E201": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create deeplink.json or deeplink.yaml, or pass --config",
	},
	"E202": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check that the file is valid JSON or YAML",
	},
	"E203": {
		Category:   CategoryConfig,
		Message:    "Invalid URI scheme",
		Suggestion: "A scheme starts with a letter followed by letters, digits, '+', '-' or '.'",
	},
	"E204": {
		Category:   CategoryConfig,
		Message:    "Invalid log level",
		Suggestion: "Use one of debug, info, warn, error",
	},
	"E205": {
		Category:   CategoryConfig,
		Message:    "Unsupported configuration format",
		Suggestion: "Use a .json, .yaml or .yml file",
	},
	"E206": {
		Category:   CategoryConfig,
		Message:    "Invalid log format",
		Suggestion: "Use text or json",
	},

	// ============================================
	// CLI errors (E301-E399)
	// ============================================

	"E301": {
		Category:   CategoryCLI,
		Message:    "Invalid field argument",
		Suggestion: "Pass fields as key=value",
	},
	"E302": {
		Category:   CategoryCLI,
		Message:    "Unknown route id",
		Suggestion: "Run 'deeplink routes' to list registered route ids",
	},
	"E303": {
		Category: CategoryCLI,
		Message:  "Fields do not decode into the route",
	},
	"E304": {
		Category: CategoryCLI,
		Message:  "Link did not resolve to a route",
	},
	"E305": {
		Category:   CategoryCLI,
		Message:    "Invalid notification payload",
		Suggestion: "Pass a flat JSON object of string values",
	},
	"E306": {
		Category:   CategoryCLI,
		Message:    "Configuration file already exists",
		Suggestion: "Pass --force to overwrite it",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
