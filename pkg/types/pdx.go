package types

var implantSchema = &Schema{
	Table:        TableImplant,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "implant_location", Kind: FieldText, MaxLength: 100},
		{Name: "type", Kind: FieldText, MaxLength: 100},
		{Name: "size_limit", Kind: FieldReal},
		{Name: "pdx_trial_id", Kind: FieldText, Required: true, MaxLength: 36, References: TablePDXTrial},
	},
}

// Implant is a tumor fragment implanted as part of a PDX trial.
type Implant struct {
	ID              string   `json:"id"`
	ImplantLocation *string  `json:"implant_location"`
	Type            *string  `json:"type"`
	SizeLimit       *float64 `json:"size_limit"`
	PDXTrialID      string   `json:"pdx_trial_id"`
}

func (i *Implant) Schema() *Schema  { return implantSchema }
func (i *Implant) Key() string      { return i.ID }
func (i *Implant) SetKey(id string) { i.ID = id }
func (i *Implant) Columns() []any {
	return []any{&i.ID, &i.ImplantLocation, &i.Type, &i.SizeLimit, &i.PDXTrialID}
}

func (i *Implant) Validate() error {
	var fe FieldErrors
	checkNonNegativeReal(&fe, "size_limit", i.SizeLimit)
	return fe.Err()
}

var sizeRecordSchema = &Schema{
	Table:        TableSizeRecord,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "week_number", Kind: FieldInteger},
		{Name: "initial_size_mm3", Kind: FieldReal},
		{Name: "final_size_mm3", Kind: FieldReal},
		{Name: "implant_id", Kind: FieldText, Required: true, MaxLength: 36, References: TableImplant},
	},
}

// SizeRecord is a weekly tumor volume measurement for an implant.
type SizeRecord struct {
	ID             string   `json:"id"`
	WeekNumber     *int64   `json:"week_number"`
	InitialSizeMM3 *float64 `json:"initial_size_mm3"`
	FinalSizeMM3   *float64 `json:"final_size_mm3"`
	ImplantID      string   `json:"implant_id"`
}

func (s *SizeRecord) Schema() *Schema  { return sizeRecordSchema }
func (s *SizeRecord) Key() string      { return s.ID }
func (s *SizeRecord) SetKey(id string) { s.ID = id }
func (s *SizeRecord) Columns() []any {
	return []any{&s.ID, &s.WeekNumber, &s.InitialSizeMM3, &s.FinalSizeMM3, &s.ImplantID}
}

func (s *SizeRecord) Validate() error {
	var fe FieldErrors
	checkNonNegativeInt(&fe, "week_number", s.WeekNumber)
	checkNonNegativeReal(&fe, "initial_size_mm3", s.InitialSizeMM3)
	checkNonNegativeReal(&fe, "final_size_mm3", s.FinalSizeMM3)
	return fe.Err()
}

var mouseSchema = &Schema{
	Table:        TableMouse,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "birth_date", Kind: FieldDate},
		{Name: "death_cause", Kind: FieldText, MaxLength: 255},
		{Name: "animal_facility", Kind: FieldText, MaxLength: 100},
		{Name: "proex", Kind: FieldText, MaxLength: 100},
		{Name: "strain", Kind: FieldText, MaxLength: 100},
		{Name: "sex", Kind: FieldText, MaxLength: 20},
		{Name: "death_date", Kind: FieldDate},
		{Name: "pdx_trial_id", Kind: FieldText, Required: true, MaxLength: 36, References: TablePDXTrial, Unique: true},
	},
}

// Mouse is the host animal of a PDX trial. Each PDX trial has at most one.
type Mouse struct {
	ID             string  `json:"id"`
	BirthDate      *Date   `json:"birth_date"`
	DeathCause     *string `json:"death_cause"`
	AnimalFacility *string `json:"animal_facility"`
	Proex          *string `json:"proex"`
	Strain         *string `json:"strain"`
	Sex            *string `json:"sex"`
	DeathDate      *Date   `json:"death_date"`
	PDXTrialID     string  `json:"pdx_trial_id"`
}

func (m *Mouse) Schema() *Schema  { return mouseSchema }
func (m *Mouse) Key() string      { return m.ID }
func (m *Mouse) SetKey(id string) { m.ID = id }
func (m *Mouse) Columns() []any {
	return []any{
		&m.ID, &m.BirthDate, &m.DeathCause, &m.AnimalFacility, &m.Proex,
		&m.Strain, &m.Sex, &m.DeathDate, &m.PDXTrialID,
	}
}

func (m *Mouse) Validate() error {
	var fe FieldErrors
	checkDateOrder(&fe, "birth_date", m.BirthDate, "death_date", m.DeathDate)
	return fe.Err()
}

var facsSchema = &Schema{
	Table:        TableFACS,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "lc_trial_id", Kind: FieldText, MaxLength: 36, References: TableLCTrial, Unique: true},
	},
}

// FACS is the flow cytometry record of an LC trial.
type FACS struct {
	ID        string  `json:"id"`
	LCTrialID *string `json:"lc_trial_id"`
}

func (f *FACS) Schema() *Schema  { return facsSchema }
func (f *FACS) Key() string      { return f.ID }
func (f *FACS) SetKey(id string) { f.ID = id }
func (f *FACS) Columns() []any   { return []any{&f.ID, &f.LCTrialID} }
func (f *FACS) Validate() error  { return nil }
