package validation

import (
	"strings"
	"testing"
)

func validPayload() ClientPayload {
	return ClientPayload{
		FirstName: "John",
		LastName:  "Smith",
		Email:     "john.smith@example.com",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *ClientPayload)
		expected map[string]string // field -> message, nil means valid
	}{
		{
			name:     "minimal valid payload",
			mutate:   func(p *ClientPayload) {},
			expected: nil,
		},
		{
			name: "all optional fields filled",
			mutate: func(p *ClientPayload) {
				p.Phone = "555-123-4567"
				p.Company = "Acme Corp"
				p.AddressLine1 = "1 Main Street"
				p.AddressLine2 = "Suite 4"
				p.City = "Springfield"
				p.State = "IL"
				p.PostalCode = "62701"
				p.Country = "USA"
			},
			expected: nil,
		},
		{
			name:   "missing first name",
			mutate: func(p *ClientPayload) { p.FirstName = "" },
			expected: map[string]string{
				"firstName": "First name is required.",
			},
		},
		{
			name:   "missing last name",
			mutate: func(p *ClientPayload) { p.LastName = "" },
			expected: map[string]string{
				"lastName": "Last name is required.",
			},
		},
		{
			name:   "missing email",
			mutate: func(p *ClientPayload) { p.Email = "" },
			expected: map[string]string{
				"email": "Email is required.",
			},
		},
		{
			name:   "malformed email",
			mutate: func(p *ClientPayload) { p.Email = "not-an-email" },
			expected: map[string]string{
				"email": "Email must be a valid email address.",
			},
		},
		{
			name:   "first name at the limit passes",
			mutate: func(p *ClientPayload) { p.FirstName = strings.Repeat("a", 100) },
			expected: nil,
		},
		{
			name:   "first name over the limit",
			mutate: func(p *ClientPayload) { p.FirstName = strings.Repeat("a", 101) },
			expected: map[string]string{
				"firstName": "First name must not exceed 100 characters.",
			},
		},
		{
			name:   "email over the limit",
			mutate: func(p *ClientPayload) { p.Email = strings.Repeat("a", 250) + "@example.com" },
			expected: map[string]string{
				"email": "Email must not exceed 255 characters.",
			},
		},
		{
			name:   "phone in the wrong shape",
			mutate: func(p *ClientPayload) { p.Phone = "5551234567" },
			expected: map[string]string{
				"phone": "Phone must be in format XXX-XXX-XXXX.",
			},
		},
		{
			name:   "phone with letters",
			mutate: func(p *ClientPayload) { p.Phone = "abc-def-ghij" },
			expected: map[string]string{
				"phone": "Phone must be in format XXX-XXX-XXXX.",
			},
		},
		{
			name:     "empty phone is allowed",
			mutate:   func(p *ClientPayload) { p.Phone = "" },
			expected: nil,
		},
		{
			name:   "company over the limit",
			mutate: func(p *ClientPayload) { p.Company = strings.Repeat("c", 256) },
			expected: map[string]string{
				"company": "Company must not exceed 255 characters.",
			},
		},
		{
			name:   "postal code over the limit",
			mutate: func(p *ClientPayload) { p.PostalCode = strings.Repeat("9", 21) },
			expected: map[string]string{
				"postalCode": "Postal code must not exceed 20 characters.",
			},
		},
	}

	v := NewClientValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(&payload)

			fieldErrors := v.Validate(payload)

			if tt.expected == nil {
				if len(fieldErrors) != 0 {
					t.Fatalf("expected valid payload, got %v", fieldErrors)
				}
				return
			}

			if len(fieldErrors) != len(tt.expected) {
				t.Fatalf("expected %d errors, got %d (%v)", len(tt.expected), len(fieldErrors), fieldErrors)
			}
			for _, fe := range fieldErrors {
				want, ok := tt.expected[fe.Field]
				if !ok {
					t.Errorf("unexpected error on field %s: %s", fe.Field, fe.Message)
					continue
				}
				if fe.Message != want {
					t.Errorf("field %s: expected %q, got %q", fe.Field, want, fe.Message)
				}
			}
		})
	}
}

// All violations are reported in one pass, not just the first.
func TestValidateCollectsAllViolations(t *testing.T) {
	v := NewClientValidator()

	fieldErrors := v.Validate(ClientPayload{
		Email: "broken",
		Phone: "12345",
	})

	byField := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		byField[fe.Field] = fe.Message
	}

	expected := map[string]string{
		"firstName": "First name is required.",
		"lastName":  "Last name is required.",
		"email":     "Email must be a valid email address.",
		"phone":     "Phone must be in format XXX-XXX-XXXX.",
	}
	if len(byField) != len(expected) {
		t.Fatalf("expected %d errors, got %d (%v)", len(expected), len(byField), fieldErrors)
	}
	for field, want := range expected {
		if byField[field] != want {
			t.Errorf("field %s: expected %q, got %q", field, want, byField[field])
		}
	}
}
