package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vbind/internal/errors"
)

// DecodeData decodes a data bag. name selects the format: .json is JSON,
// .yaml and .yml are YAML, anything else is tried as JSON first and YAML
// second. Empty input is an empty bag.
func DecodeData(name string, raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var (
		data any
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		err = json.Unmarshal(raw, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		if err = json.Unmarshal(raw, &data); err != nil {
			err = yaml.Unmarshal(raw, &data)
		}
	}
	if err != nil {
		return nil, errors.New("E041").WithExpr(name).Wrap(err)
	}

	m, ok := data.(map[string]any)
	if !ok {
		return nil, errors.New("E041").WithExpr(name).
			Wrap(fmt.Errorf("top level is %T, want a mapping", data))
	}
	return m, nil
}
