package domain

import "encoding/json"

// Extras keeps the fields of a remote record this service does not model,
// so a whole-object PATCH writes them back untouched.
type Extras map[string]json.RawMessage

// decodeWithExtras decodes data into v and returns every top-level key that
// v does not serialise. v must serialise all of its known keys (no omitempty).
func decodeWithExtras(data []byte, v any) (Extras, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	knownJSON, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownJSON, &known); err != nil {
		return nil, err
	}

	for k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

func encodeWithExtras(v any, extras Extras) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extras) == 0 {
		return data, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, val := range extras {
		if _, ok := merged[k]; !ok {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}

func (e Extras) clone() Extras {
	if e == nil {
		return nil
	}
	out := make(Extras, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
