package source

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme is the kind of a location.
type Scheme uint8

const (
	SchemeFile Scheme = iota
	SchemeStdin
	SchemeS3
)

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case SchemeFile:
		return "file"
	case SchemeStdin:
		return "stdin"
	case SchemeS3:
		return "s3"
	default:
		return "unknown"
	}
}

// Location is a parsed source location.
type Location struct {
	Scheme Scheme
	Path   string // File path for SchemeFile
	Bucket string // Bucket for SchemeS3
	Key    string // Object key for SchemeS3
}

// String returns the location in the form it was given.
func (l Location) String() string {
	switch l.Scheme {
	case SchemeStdin:
		return "-"
	case SchemeS3:
		return "s3://" + l.Bucket + "/" + l.Key
	default:
		return l.Path
	}
}

// Name is the base name used to pick a data format.
func (l Location) Name() string {
	p := l.Path
	if l.Scheme == SchemeS3 {
		p = l.Key
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// ParseLocation parses a file path, "-" or an s3://bucket/key URL.
func ParseLocation(s string) (Location, error) {
	switch {
	case s == "":
		return Location{}, fmt.Errorf("empty source location")
	case s == "-":
		return Location{Scheme: SchemeStdin}, nil
	case strings.HasPrefix(s, "s3://"):
		u, err := url.Parse(s)
		if err != nil {
			return Location{}, fmt.Errorf("parse %q: %w", s, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("s3 location %q must be s3://bucket/key", s)
		}
		return Location{Scheme: SchemeS3, Bucket: u.Host, Key: key}, nil
	}
	return Location{Scheme: SchemeFile, Path: s}, nil
}
