package models

import (
	"encoding/json"
	"time"
)

// Now returns the timestamp format stored on every record.
func Now() string {
	return time.Now().Format(time.RFC3339)
}

// marshalRecord merges a record's known fields with its extras bag. Known
// fields win on key collisions so stale extras can never shadow typed data.
func marshalRecord(known interface{}, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return b, nil
	}
	merged := make(map[string]json.RawMessage, len(extra)+8)
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// unmarshalRecord decodes data into the known struct and returns every field
// not claimed by keys, so unmodeled fields survive a load/save round trip.
func unmarshalRecord(data []byte, known interface{}, keys ...string) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range keys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// ApplyFields overlays patch fields onto a record's JSON form and decodes the
// result into out. Used for PUT-style partial updates and for applying create
// payloads over defaulted records.
func ApplyFields(rec interface{}, fields map[string]json.RawMessage, out interface{}) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &merged); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}
	b, err = json.Marshal(merged)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
