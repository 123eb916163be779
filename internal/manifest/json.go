package manifest

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders the manifest as a JSON object in transform order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, t := range m.Transforms {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}

		filters := t.Filters
		if filters == nil {
			filters = []Filter{}
		}

		value, err := json.Marshal(filters)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalIndentJSON renders the manifest the way filters.json is laid out.
func MarshalIndentJSON(m *Manifest) ([]byte, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "    "); err != nil {
		return nil, err
	}

	out.WriteByte('\n')

	return out.Bytes(), nil
}
