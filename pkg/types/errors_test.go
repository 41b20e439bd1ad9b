package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinel(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want error
		kind ErrorKind
	}{
		{"not found", NotFound(TableTumor, "T-1"), ErrNotFound, KindNotFound},
		{"validation", Validationf(TableMouse, "bad %s", "date"), ErrValidation, KindValidation},
		{"constraint", Constraint(TableBiomodel, "FOREIGN KEY constraint failed"), ErrConstraint, KindConstraint},
		{"persistence", Persistence(TablePatient, "disk I/O error"), ErrPersistence, KindPersistence},
		{"unknown table", UnknownTable("spaceship"), ErrNotFound, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
			assert.Equal(t, tt.kind, KindOf(tt.err))
			wrapped := fmt.Errorf("handling request: %w", tt.err)
			assert.Equal(t, tt.kind, KindOf(wrapped))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "tumor T-1: not found", NotFound(TableTumor, "T-1").Error())
	assert.Equal(t, "biomodel: constraint violation: FOREIGN KEY constraint failed",
		Constraint(TableBiomodel, "FOREIGN KEY constraint failed").Error())
	assert.Equal(t, "validation error: payload must be a JSON object",
		Validationf("", "payload must be a JSON object").Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindConstraint, KindOf(fmt.Errorf("x: %w", ErrConstraint)))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "validation_error", KindValidation.String())
	assert.Equal(t, "constraint_violation", KindConstraint.String())
	assert.Equal(t, "persistence_error", KindPersistence.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestFieldErrors(t *testing.T) {
	var fe FieldErrors
	assert.NoError(t, fe.Err())

	fe.Add("viability", "must be between 0 and 100")
	fe.Add("number", "must not be negative")
	err := fe.Err()
	assert.Error(t, err)
	assert.Equal(t, "viability: must be between 0 and 100; number: must not be negative", err.Error())
}
