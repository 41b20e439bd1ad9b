package types

var tumorSchema = &Schema{
	Table: TableTumor,
	Key:   "biobank_code",
	Fields: []Field{
		{Name: "biobank_code", Kind: FieldText, Required: true, MaxLength: 100},
		{Name: "lab_code", Kind: FieldText, MaxLength: 100},
		{Name: "classification", Kind: FieldText, MaxLength: 100},
		{Name: "ap_observation", Kind: FieldText},
		{Name: "grade", Kind: FieldText, MaxLength: 50},
		{Name: "organ", Kind: FieldText, MaxLength: 100},
		{Name: "status", Kind: FieldText, MaxLength: 50},
		{Name: "tnm", Kind: FieldText, MaxLength: 50},
		{Name: "patient_nhc", Kind: FieldText, Required: true, MaxLength: 50, References: TablePatient},
		{Name: "registration_date", Kind: FieldDate},
		{Name: "operation_date", Kind: FieldDate},
	},
}

// Tumor is a biobanked tumor sample, keyed by its biobank code.
type Tumor struct {
	BiobankCode      string  `json:"biobank_code"`
	LabCode          *string `json:"lab_code"`
	Classification   *string `json:"classification"`
	APObservation    *string `json:"ap_observation"`
	Grade            *string `json:"grade"`
	Organ            *string `json:"organ"`
	Status           *string `json:"status"`
	TNM              *string `json:"tnm"`
	PatientNHC       string  `json:"patient_nhc"`
	RegistrationDate *Date   `json:"registration_date"`
	OperationDate    *Date   `json:"operation_date"`
}

func (t *Tumor) Schema() *Schema  { return tumorSchema }
func (t *Tumor) Key() string      { return t.BiobankCode }
func (t *Tumor) SetKey(id string) { t.BiobankCode = id }
func (t *Tumor) Columns() []any {
	return []any{
		&t.BiobankCode, &t.LabCode, &t.Classification, &t.APObservation, &t.Grade,
		&t.Organ, &t.Status, &t.TNM, &t.PatientNHC, &t.RegistrationDate, &t.OperationDate,
	}
}
func (t *Tumor) Validate() error { return nil }

var liquidBiopsySchema = &Schema{
	Table:        TableLiquidBiopsy,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "has_serum", Kind: FieldBool},
		{Name: "has_buffy", Kind: FieldBool},
		{Name: "has_plasma", Kind: FieldBool},
		{Name: "tumor_biobank_code", Kind: FieldText, MaxLength: 100, References: TableTumor},
		{Name: "biopsy_date", Kind: FieldDate},
	},
}

// LiquidBiopsy records which blood fractions were kept for a tumor.
type LiquidBiopsy struct {
	ID               string  `json:"id"`
	HasSerum         *bool   `json:"has_serum"`
	HasBuffy         *bool   `json:"has_buffy"`
	HasPlasma        *bool   `json:"has_plasma"`
	TumorBiobankCode *string `json:"tumor_biobank_code"`
	BiopsyDate       *Date   `json:"biopsy_date"`
}

func (l *LiquidBiopsy) Schema() *Schema  { return liquidBiopsySchema }
func (l *LiquidBiopsy) Key() string      { return l.ID }
func (l *LiquidBiopsy) SetKey(id string) { l.ID = id }
func (l *LiquidBiopsy) Columns() []any {
	return []any{&l.ID, &l.HasSerum, &l.HasBuffy, &l.HasPlasma, &l.TumorBiobankCode, &l.BiopsyDate}
}
func (l *LiquidBiopsy) Validate() error { return nil }
