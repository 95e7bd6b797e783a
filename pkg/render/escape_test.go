package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Hello, World!", "Hello, World!"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"a < b > c", "a &lt; b &gt; c"},
		{`say "hello"`, "say &quot;hello&quot;"},
		{"it's fine", "it&#39;s fine"},
		{"<script>alert('xss')</script>", "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;"},
		{"{{ user.name }}", "{{ user.name }}"},
		{"Hello 世界", "Hello 世界"},
		{"&amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		if got := escapeHTML(tt.input); got != tt.expected {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"increment", "increment"},
		{"a&b", "a&amp;b"},
		{`value="test"`, "value=&quot;test&quot;"},
		{"line1\nline2", "line1&#10;line2"},
		{"a\n\r\tb", "a&#10;&#13;&#9;b"},
		{`<>&"'`, "&lt;&gt;&amp;&quot;&#39;"},
	}

	for _, tt := range tests {
		if got := escapeAttr(tt.input); got != tt.expected {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEscapeComment(t *testing.T) {
	if got := escapeComment("a --> b"); got != "a --&gt; b" {
		t.Errorf("escapeComment = %q", got)
	}
	if got := escapeComment("plain"); got != "plain" {
		t.Errorf("escapeComment = %q", got)
	}
}
