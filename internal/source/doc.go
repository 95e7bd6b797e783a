// Package source reads templates and data bags.
//
// A location is a file path, "-" for standard input, or an object URL of
// the form s3://bucket/key:
//
//	l := source.NewLoader(source.WithS3(client))
//	markup, err := l.Read(ctx, "s3://site-templates/index.html")
//	raw, err := l.Read(ctx, "data.yaml")
//	data, err := source.DecodeData("data.yaml", raw)
//
// Data files are JSON or YAML, chosen by extension; YAML is also accepted
// for unknown extensions when the content is not JSON. The top level must
// be a mapping.
package source
