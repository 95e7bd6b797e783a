package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Resolve Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryResolve,
		Message:  "Path segment not found",
		Detail:   "A segment of the expression names a key, field or index that does not exist in the view-model data.",
		DocURL:   "https://vbind.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryResolve,
		Message:  "Value is not indexable",
		Detail:   "The expression indexes into a number, string or other value that has no keys, fields or elements.",
		DocURL:   "https://vbind.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryResolve,
		Message:  "Empty expression",
		Detail:   "A directive value or interpolation is empty or contains an empty segment such as \"a..b\".",
		DocURL:   "https://vbind.dev/docs/errors/E003",
	},

	// ============================================
	// Mount Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryMount,
		Message:  "Invalid selector",
		Detail:   "The mount selector could not be parsed. Supported forms are tag, #id, .class, [attr], [attr=value], compounds and descendant chains.",
		DocURL:   "https://vbind.dev/docs/errors/E010",
	},
	"E011": {
		Category: CategoryMount,
		Message:  "Unsupported mount target",
		Detail:   "The mount target must be a *vdom.VNode, a selector string or nil.",
		DocURL:   "https://vbind.dev/docs/errors/E011",
	},
	"E012": {
		Category: CategoryMount,
		Message:  "Selector requires a document",
		Detail:   "A selector string was given as mount target but no document was supplied to query.",
		DocURL:   "https://vbind.dev/docs/errors/E012",
	},

	// ============================================
	// Template Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryTemplate,
		Message:  "Template parse failed",
		Detail:   "The template markup could not be parsed as HTML.",
		DocURL:   "https://vbind.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryTemplate,
		Message:  "Render failed",
		Detail:   "The compiled tree could not be written as HTML.",
		DocURL:   "https://vbind.dev/docs/errors/E021",
	},

	// ============================================
	// Config Errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryConfig,
		Message:  "Configuration load failed",
		Detail:   "vbind.json or vbind.yaml exists but could not be read or decoded.",
		DocURL:   "https://vbind.dev/docs/errors/E030",
	},
	"E031": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or not one of the accepted options.",
		DocURL:   "https://vbind.dev/docs/errors/E031",
	},

	// ============================================
	// Source Errors (E040-E049)
	// ============================================

	"E040": {
		Category: CategorySource,
		Message:  "Source fetch failed",
		Detail:   "The template or data source could not be read from the file system, stdin or object storage.",
		DocURL:   "https://vbind.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategorySource,
		Message:  "Data decode failed",
		Detail:   "The data file is not valid JSON or YAML, or its top level is not a mapping.",
		DocURL:   "https://vbind.dev/docs/errors/E041",
	},

	// ============================================
	// Runtime Errors (E050-E059)
	// ============================================

	"E050": {
		Category: CategoryRuntime,
		Message:  "Compile cancelled",
		Detail:   "The context was cancelled before the compile pass finished. The tree was restored to its state before the pass.",
		DocURL:   "https://vbind.dev/docs/errors/E050",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
