package render

// inlineElements stay on the line of their parent in pretty output.
var inlineElements = map[string]bool{
	"a":      true,
	"abbr":   true,
	"b":      true,
	"br":     true,
	"button": true,
	"cite":   true,
	"code":   true,
	"em":     true,
	"i":      true,
	"img":    true,
	"input":  true,
	"kbd":    true,
	"label":  true,
	"mark":   true,
	"q":      true,
	"s":      true,
	"samp":   true,
	"small":  true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"time":   true,
	"u":      true,
	"var":    true,
}

// booleanAttrs are written as a bare name when their value is empty or
// repeats the name.
var booleanAttrs = map[string]bool{
	"async":          true,
	"autofocus":      true,
	"autoplay":       true,
	"checked":        true,
	"controls":       true,
	"defer":          true,
	"disabled":       true,
	"formnovalidate": true,
	"hidden":         true,
	"loop":           true,
	"multiple":       true,
	"muted":          true,
	"novalidate":     true,
	"open":           true,
	"readonly":       true,
	"required":       true,
	"selected":       true,
}

// rawTextElements hold text that is not escaped.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// preformatted elements keep their content as is in pretty output.
var preformatted = map[string]bool{
	"pre":      true,
	"textarea": true,
	"script":   true,
	"style":    true,
}

func isBooleanAttr(name, value string) bool {
	return booleanAttrs[name] && (value == "" || value == name)
}
