package pipeline

// Request payload field names.
const (
	fieldLogin    = "login"
	fieldPassword = "password"
	fieldTitle    = "title"
)

// extractFields pulls the required string fields out of a decoded JSON
// payload. A nil payload (absent or unparseable body) yields a MissingBody
// failure; a present payload missing any field, or carrying a null or
// non-string value for it, yields a MissingField failure. An empty string
// counts as present. No side effects.
func extractFields(payload map[string]any, fields ...string) (map[string]string, *Failure) {
	if payload == nil {
		return nil, &Failure{Kind: KindMissingBody}
	}

	values := make(map[string]string, len(fields))
	for _, name := range fields {
		value, ok := payload[name].(string)
		if !ok {
			return nil, &Failure{Kind: KindMissingField}
		}
		values[name] = value
	}

	return values, nil
}
