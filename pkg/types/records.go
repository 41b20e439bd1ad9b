package types

var usageRecordSchema = &Schema{
	Table:        TableUsageRecord,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "usage_type", Kind: FieldText, MaxLength: 100},
		{Name: "description", Kind: FieldText},
		{Name: "date", Kind: FieldDate},
		{Name: "trial_id", Kind: FieldText, Required: true, MaxLength: 36, References: TableTrial},
	},
}

// UsageRecord logs how trial material was used.
type UsageRecord struct {
	ID          string  `json:"id"`
	UsageType   *string `json:"usage_type"`
	Description *string `json:"description"`
	Date        *Date   `json:"date"`
	TrialID     string  `json:"trial_id"`
}

func (u *UsageRecord) Schema() *Schema  { return usageRecordSchema }
func (u *UsageRecord) Key() string      { return u.ID }
func (u *UsageRecord) SetKey(id string) { u.ID = id }
func (u *UsageRecord) Columns() []any {
	return []any{&u.ID, &u.UsageType, &u.Description, &u.Date, &u.TrialID}
}
func (u *UsageRecord) Validate() error { return nil }

var imageSchema = &Schema{
	Table:        TableImage,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "date", Kind: FieldDate},
		{Name: "type", Kind: FieldText, MaxLength: 100},
		{Name: "ap_review", Kind: FieldText},
		{Name: "trial_id", Kind: FieldText, Required: true, MaxLength: 36, References: TableTrial},
	},
}

// Image is a microscopy or histology image taken during a trial.
type Image struct {
	ID       string  `json:"id"`
	Date     *Date   `json:"date"`
	Type     *string `json:"type"`
	APReview *string `json:"ap_review"`
	TrialID  string  `json:"trial_id"`
}

func (i *Image) Schema() *Schema  { return imageSchema }
func (i *Image) Key() string      { return i.ID }
func (i *Image) SetKey(id string) { i.ID = id }
func (i *Image) Columns() []any   { return []any{&i.ID, &i.Date, &i.Type, &i.APReview, &i.TrialID} }
func (i *Image) Validate() error  { return nil }

var cryopreservationSchema = &Schema{
	Table:        TableCryopreservation,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "location", Kind: FieldText, MaxLength: 100},
		{Name: "date", Kind: FieldDate},
		{Name: "vial_count", Kind: FieldInteger},
		{Name: "trial_id", Kind: FieldText, Required: true, MaxLength: 36, References: TableTrial},
	},
}

// Cryopreservation records vials frozen from a trial.
type Cryopreservation struct {
	ID        string  `json:"id"`
	Location  *string `json:"location"`
	Date      *Date   `json:"date"`
	VialCount *int64  `json:"vial_count"`
	TrialID   string  `json:"trial_id"`
}

func (c *Cryopreservation) Schema() *Schema  { return cryopreservationSchema }
func (c *Cryopreservation) Key() string      { return c.ID }
func (c *Cryopreservation) SetKey(id string) { c.ID = id }
func (c *Cryopreservation) Columns() []any {
	return []any{&c.ID, &c.Location, &c.Date, &c.VialCount, &c.TrialID}
}

func (c *Cryopreservation) Validate() error {
	var fe FieldErrors
	checkNonNegativeInt(&fe, "vial_count", c.VialCount)
	return fe.Err()
}

var genomicSequencingSchema = &Schema{
	Table:        TableGenomicSequencing,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "trial_id", Kind: FieldText, MaxLength: 36, References: TableTrial, Unique: true},
	},
}

// GenomicSequencing marks that a trial was sequenced.
type GenomicSequencing struct {
	ID      string  `json:"id"`
	TrialID *string `json:"trial_id"`
}

func (g *GenomicSequencing) Schema() *Schema  { return genomicSequencingSchema }
func (g *GenomicSequencing) Key() string      { return g.ID }
func (g *GenomicSequencing) SetKey(id string) { g.ID = id }
func (g *GenomicSequencing) Columns() []any   { return []any{&g.ID, &g.TrialID} }
func (g *GenomicSequencing) Validate() error  { return nil }

var molecularDataSchema = &Schema{
	Table:        TableMolecularData,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "trial_id", Kind: FieldText, MaxLength: 36, References: TableTrial, Unique: true},
	},
}

type MolecularData struct {
	ID      string  `json:"id"`
	TrialID *string `json:"trial_id"`
}

func (m *MolecularData) Schema() *Schema  { return molecularDataSchema }
func (m *MolecularData) Key() string      { return m.ID }
func (m *MolecularData) SetKey(id string) { m.ID = id }
func (m *MolecularData) Columns() []any   { return []any{&m.ID, &m.TrialID} }
func (m *MolecularData) Validate() error  { return nil }
