package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "eventconnect.json exists but could not be read.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "eventconnect.json is not valid JSON or does not match the expected schema.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "An EVENTCONNECT_* environment variable could not be parsed.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Config validation failed",
		Detail:   "One or more configuration values are out of range.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No eventconnect.json was found in the directory or any parent.",
	},

	// ============================================
	// Rule Set Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryRules,
		Message:  "Rule set unreadable",
		Detail:   "The dialog rule set is not valid YAML.",
	},
	"E201": {
		Category: CategoryRules,
		Message:  "Unknown field in rule set",
		Detail:   "A mode or dependency references a field that is not declared.",
	},
	"E202": {
		Category: CategoryRules,
		Message:  "Invalid mode in rule set",
		Detail:   "The default mode is not declared, or a mode is declared twice.",
	},
	"E203": {
		Category: CategoryRules,
		Message:  "Invalid field in rule set",
		Detail:   "A field has an unknown kind, a duplicate name, or a tuple without size.",
	},
	"E204": {
		Category: CategoryRules,
		Message:  "Form not found",
		Detail:   "No form with this name is declared in the rule set.",
	},

	// ============================================
	// Upload Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategoryUpload,
		Message:  "Image unreadable",
		Detail:   "The selected file could not be read.",
	},
	"E301": {
		Category: CategoryUpload,
		Message:  "Image too large",
		Detail:   "The selected file exceeds the maximum upload size.",
	},
	"E302": {
		Category: CategoryUpload,
		Message:  "Unsupported image type",
		Detail:   "Only image files can be attached.",
	},

	// ============================================
	// Navigation & CLI Errors (E400-E419)
	// ============================================

	"E400": {
		Category: CategoryNavigation,
		Message:  "Unknown page",
		Detail:   "The navigation target is not a routable page.",
	},
	"E410": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command received arguments it cannot use.",
	},
	"E411": {
		Category: CategoryCLI,
		Message:  "Submission rejected",
		Detail:   "The dialog has validation errors.",
	},
	"E412": {
		Category: CategoryCLI,
		Message:  "Not found",
		Detail:   "No item with this id exists.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
