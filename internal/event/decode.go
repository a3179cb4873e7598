package event

import "encoding/json"

// DecodePayload extracts a typed payload from an event. Payloads published
// in-process arrive as the concrete struct and the type assertion is enough;
// payloads rehydrated from JSON (dead-letter replay) arrive as
// map[string]interface{} and take the marshal round-trip instead.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
