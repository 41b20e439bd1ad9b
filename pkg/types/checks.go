package types

// Shared helpers for entity Validate methods.

func checkNonNegativeInt(fe *FieldErrors, field string, v *int64) {
	if v != nil && *v < 0 {
		fe.Add(field, "must not be negative")
	}
}

func checkNonNegativeReal(fe *FieldErrors, field string, v *float64) {
	if v != nil && *v < 0 {
		fe.Add(field, "must not be negative")
	}
}

func checkPercentage(fe *FieldErrors, field string, v *float64) {
	if v != nil && (*v < 0 || *v > 100) {
		fe.Add(field, "must be between 0 and 100")
	}
}

func checkDateOrder(fe *FieldErrors, earlierField string, earlier *Date, laterField string, later *Date) {
	if earlier != nil && later != nil && later.Before(*earlier) {
		fe.Add(laterField, "must not be before %s", earlierField)
	}
}
