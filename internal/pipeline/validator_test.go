package pipeline

import "testing"

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		fields   []string
		wantKind Kind
		wantOK   bool
	}{
		{
			name:     "nil payload",
			payload:  nil,
			fields:   []string{"login"},
			wantKind: KindMissingBody,
		},
		{
			name:    "all fields present",
			payload: map[string]any{"login": "alice", "password": "p1"},
			fields:  []string{"login", "password"},
			wantOK:  true,
		},
		{
			name:    "empty string is present",
			payload: map[string]any{"login": "", "password": ""},
			fields:  []string{"login", "password"},
			wantOK:  true,
		},
		{
			name:     "absent field",
			payload:  map[string]any{"login": "alice"},
			fields:   []string{"login", "password"},
			wantKind: KindMissingField,
		},
		{
			name:     "null field",
			payload:  map[string]any{"login": "alice", "password": nil},
			fields:   []string{"login", "password"},
			wantKind: KindMissingField,
		},
		{
			name:     "non-string field",
			payload:  map[string]any{"title": 7.0},
			fields:   []string{"title"},
			wantKind: KindMissingField,
		},
		{
			name:    "extra fields ignored",
			payload: map[string]any{"title": "note", "userId": "u1"},
			fields:  []string{"title"},
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			values, fail := extractFields(tt.payload, tt.fields...)

			// Assert
			if tt.wantOK {
				if fail != nil {
					t.Fatalf("expected success, got failure kind %d", fail.Kind)
				}
				for _, f := range tt.fields {
					if _, ok := values[f]; !ok {
						t.Errorf("field %q missing from extracted values", f)
					}
				}
				return
			}

			if fail == nil {
				t.Fatal("expected a failure, got success")
			}
			if fail.Kind != tt.wantKind {
				t.Errorf("expected kind %d, got %d", tt.wantKind, fail.Kind)
			}
			if values != nil {
				t.Error("values must be nil on failure")
			}
		})
	}
}
