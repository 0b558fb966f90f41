package codec

import (
	"encoding/json"
)

// JSON encodes with encoding/json. A non-empty Indent pretty-prints.
type JSON struct {
	Indent string
}

func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", c.Indent)
}

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json" for indented output and "json-compact" otherwise.
func (c JSON) Name() string {
	if c.Indent == "" {
		return "json-compact"
	}
	return "json"
}

func (JSON) Ext() string { return ".json" }
