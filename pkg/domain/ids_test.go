package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "coldcheck/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs".
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUnitID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUnitID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUnitID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUnitID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UnitID(validUUID), id)
	})
}

// TestTypeDistinction documents that ids of different entities never compare equal by accident.
func TestTypeDistinction(t *testing.T) {
	sectionID := NewSectionID()
	unitID := NewUnitID()

	// var _ SectionID = unitID // compile error
	assert.NotEqual(t, uuid.UUID(sectionID), uuid.UUID(unitID))
}

func TestParseID_BoundaryInputs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE units;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReportID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical parsing behavior.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	parsers := map[string]func(string) error{
		"section": func(s string) error { _, err := ParseSectionID(s); return err },
		"unit":    func(s string) error { _, err := ParseUnitID(s); return err },
		"contact": func(s string) error { _, err := ParseContactID(s); return err },
		"report":  func(s string) error { _, err := ParseReportID(s); return err },
		"entry":   func(s string) error { _, err := ParseEntryID(s); return err },
	}

	for name, parse := range parsers {
		t.Run(name+" accepts valid UUID", func(t *testing.T) {
			require.NoError(t, parse(validUUID))
		})
		for _, input := range invalidInputs {
			t.Run(name+" rejects "+input, func(t *testing.T) {
				require.Error(t, parse(input))
			})
		}
	}
}

func TestIDsRoundTripThroughJSON(t *testing.T) {
	type payload struct {
		UnitID UnitID `json:"unit_id"`
	}
	in := payload{UnitID: NewUnitID()}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in.UnitID, out.UnitID)

	err = json.Unmarshal([]byte(`{"unit_id":"nope"}`), &out)
	require.Error(t, err)
}
