package types

var patientSchema = &Schema{
	Table: TablePatient,
	Key:   "nhc",
	Fields: []Field{
		{Name: "nhc", Kind: FieldText, Required: true, MaxLength: 50},
		{Name: "sex", Kind: FieldText, MaxLength: 20},
		{Name: "birth_date", Kind: FieldDate},
	},
}

// Patient is a research subject identified by its clinical history number.
type Patient struct {
	NHC       string  `json:"nhc"`
	Sex       *string `json:"sex"`
	BirthDate *Date   `json:"birth_date"`
}

func (p *Patient) Schema() *Schema  { return patientSchema }
func (p *Patient) Key() string      { return p.NHC }
func (p *Patient) SetKey(id string) { p.NHC = id }
func (p *Patient) Columns() []any   { return []any{&p.NHC, &p.Sex, &p.BirthDate} }
func (p *Patient) Validate() error  { return nil }
