package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversEveryTable(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range StandardTableNames {
		e, err := NewEntity(name)
		require.NoError(t, err, name)

		s := e.Schema()
		assert.Equal(t, name, s.Table)
		assert.Len(t, e.Columns(), len(s.Fields), "columns of %s must line up with fields", name)
		assert.Equal(t, 0, s.FieldIndex(s.Key), "key of %s must be the first column", name)

		key, ok := s.Field(s.Key)
		require.True(t, ok)
		assert.True(t, key.Required, "key of %s must be required", name)

		// Referenced tables must precede the referencing table.
		for _, fk := range s.ForeignKeys() {
			assert.True(t, seen[fk.References], "%s.%s references %s declared later", name, fk.Name, fk.References)
		}
		seen[name] = true
	}
}

func TestColumnsPointIntoEntity(t *testing.T) {
	tumor := &Tumor{}
	cols := tumor.Columns()
	*(cols[0].(*string)) = "BB-001"
	grade := "G2"
	*(cols[tumorSchema.FieldIndex("grade")].(**string)) = &grade

	assert.Equal(t, "BB-001", tumor.Key())
	require.NotNil(t, tumor.Grade)
	assert.Equal(t, "G2", *tumor.Grade)
}

func TestNewEntityUnknownTable(t *testing.T) {
	_, err := NewEntity("spaceship")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SchemaFor("spaceship")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubtypes(t *testing.T) {
	assert.Equal(t, []string{TableLCTrial, TablePDOTrial, TablePDXTrial}, Subtypes(TableTrial))
	assert.Empty(t, Subtypes(TablePatient))
}

func TestEntityValidate(t *testing.T) {
	neg := int64(-1)
	five := int64(5)
	ten := int64(10)
	over := 120.0
	april := NewDate(2024, time.April, 1)
	may := NewDate(2024, time.May, 1)

	tests := []struct {
		name    string
		entity  Entity
		wantErr bool
	}{
		{"mouse dies after birth", &Mouse{BirthDate: &april, DeathDate: &may}, false},
		{"mouse dies before birth", &Mouse{BirthDate: &may, DeathDate: &april}, true},
		{"passage negative number", &Passage{Number: &neg}, true},
		{"biomodel viability over 100", &Biomodel{Viability: &over}, true},
		{"lc confluence over 100", &LCTrial{Confluence: &over}, true},
		{"pdo frozen within organoids", &PDOTrial{FrozenOrganoidCount: &five, OrganoidCount: &ten}, false},
		{"pdo frozen exceeds organoids", &PDOTrial{FrozenOrganoidCount: &ten, OrganoidCount: &five}, true},
		{"cryopreservation negative vials", &Cryopreservation{VialCount: &neg}, true},
		{"empty patient", &Patient{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePayload(t *testing.T) {
	p, err := ParsePayload([]byte(`{"grade": "G1", "organ": null}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"grade", "organ"}, p.Fields())
	assert.JSONEq(t, `null`, string(p["organ"]))

	_, err = ParsePayload([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParsePayload([]byte(`null`))
	assert.ErrorIs(t, err, ErrValidation)

	built, err := PayloadFrom(map[string]any{"number": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `3`, string(built["number"]))
}
