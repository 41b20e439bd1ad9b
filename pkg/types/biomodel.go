package types

var biomodelSchema = &Schema{
	Table:        TableBiomodel,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "type", Kind: FieldText, MaxLength: 50},
		{Name: "preclinical_trials", Kind: FieldText},
		{Name: "description", Kind: FieldText},
		{Name: "creation_date", Kind: FieldDate},
		{Name: "status", Kind: FieldText, MaxLength: 50},
		{Name: "progresses", Kind: FieldBool},
		{Name: "viability", Kind: FieldReal},
		{Name: "tumor_biobank_code", Kind: FieldText, Required: true, MaxLength: 100, References: TableTumor},
	},
}

// Biomodel is a biological model (PDX, PDO, LC) derived from a tumor.
type Biomodel struct {
	ID                string   `json:"id"`
	Type              *string  `json:"type"`
	PreclinicalTrials *string  `json:"preclinical_trials"`
	Description       *string  `json:"description"`
	CreationDate      *Date    `json:"creation_date"`
	Status            *string  `json:"status"`
	Progresses        *bool    `json:"progresses"`
	Viability         *float64 `json:"viability"`
	TumorBiobankCode  string   `json:"tumor_biobank_code"`
}

func (b *Biomodel) Schema() *Schema  { return biomodelSchema }
func (b *Biomodel) Key() string      { return b.ID }
func (b *Biomodel) SetKey(id string) { b.ID = id }
func (b *Biomodel) Columns() []any {
	return []any{
		&b.ID, &b.Type, &b.PreclinicalTrials, &b.Description, &b.CreationDate,
		&b.Status, &b.Progresses, &b.Viability, &b.TumorBiobankCode,
	}
}

func (b *Biomodel) Validate() error {
	var fe FieldErrors
	checkPercentage(&fe, "viability", b.Viability)
	return fe.Err()
}

var passageSchema = &Schema{
	Table:        TablePassage,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "number", Kind: FieldInteger},
		{Name: "status", Kind: FieldText, MaxLength: 50},
		{Name: "s_index", Kind: FieldReal},
		{Name: "viability", Kind: FieldReal},
		{Name: "description", Kind: FieldText},
		{Name: "biomodel_id", Kind: FieldText, Required: true, MaxLength: 36, References: TableBiomodel},
	},
}

// Passage is one generation of a biomodel.
type Passage struct {
	ID          string   `json:"id"`
	Number      *int64   `json:"number"`
	Status      *string  `json:"status"`
	SIndex      *float64 `json:"s_index"`
	Viability   *float64 `json:"viability"`
	Description *string  `json:"description"`
	BiomodelID  string   `json:"biomodel_id"`
}

func (p *Passage) Schema() *Schema  { return passageSchema }
func (p *Passage) Key() string      { return p.ID }
func (p *Passage) SetKey(id string) { p.ID = id }
func (p *Passage) Columns() []any {
	return []any{&p.ID, &p.Number, &p.Status, &p.SIndex, &p.Viability, &p.Description, &p.BiomodelID}
}

func (p *Passage) Validate() error {
	var fe FieldErrors
	checkNonNegativeInt(&fe, "number", p.Number)
	checkPercentage(&fe, "viability", p.Viability)
	return fe.Err()
}
