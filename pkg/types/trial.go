package types

var trialSchema = &Schema{
	Table:        TableTrial,
	Key:          "id",
	GeneratedKey: true,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36},
		{Name: "success", Kind: FieldBool},
		{Name: "description", Kind: FieldText},
		{Name: "creation_date", Kind: FieldDate},
		{Name: "biobank_shipment", Kind: FieldBool},
		{Name: "biobank_arrival_date", Kind: FieldDate},
		{Name: "passage_id", Kind: FieldText, Required: true, MaxLength: 36, References: TablePassage},
	},
}

// Trial is the base record shared by PDX, PDO and LC trials.
type Trial struct {
	ID                 string  `json:"id"`
	Success            *bool   `json:"success"`
	Description        *string `json:"description"`
	CreationDate       *Date   `json:"creation_date"`
	BiobankShipment    *bool   `json:"biobank_shipment"`
	BiobankArrivalDate *Date   `json:"biobank_arrival_date"`
	PassageID          string  `json:"passage_id"`
}

func (t *Trial) Schema() *Schema  { return trialSchema }
func (t *Trial) Key() string      { return t.ID }
func (t *Trial) SetKey(id string) { t.ID = id }
func (t *Trial) Columns() []any {
	return []any{&t.ID, &t.Success, &t.Description, &t.CreationDate, &t.BiobankShipment, &t.BiobankArrivalDate, &t.PassageID}
}

func (t *Trial) Validate() error {
	var fe FieldErrors
	checkDateOrder(&fe, "creation_date", t.CreationDate, "biobank_arrival_date", t.BiobankArrivalDate)
	return fe.Err()
}

// Subtype ids are supplied by the caller and must name an existing trial.

var pdxTrialSchema = &Schema{
	Table: TablePDXTrial,
	Key:   "id",
	Base:  TableTrial,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36, References: TableTrial},
		{Name: "ffpe", Kind: FieldBool},
		{Name: "he_slide", Kind: FieldBool},
		{Name: "ihq_data", Kind: FieldText},
		{Name: "latency_weeks", Kind: FieldInteger},
		{Name: "s_index", Kind: FieldReal},
		{Name: "scanner_magnification", Kind: FieldText, MaxLength: 50},
	},
}

// PDXTrial extends a trial with patient-derived xenograft data.
type PDXTrial struct {
	ID                   string   `json:"id"`
	FFPE                 *bool    `json:"ffpe"`
	HESlide              *bool    `json:"he_slide"`
	IHQData              *string  `json:"ihq_data"`
	LatencyWeeks         *int64   `json:"latency_weeks"`
	SIndex               *float64 `json:"s_index"`
	ScannerMagnification *string  `json:"scanner_magnification"`
}

func (p *PDXTrial) Schema() *Schema  { return pdxTrialSchema }
func (p *PDXTrial) Key() string      { return p.ID }
func (p *PDXTrial) SetKey(id string) { p.ID = id }
func (p *PDXTrial) Columns() []any {
	return []any{&p.ID, &p.FFPE, &p.HESlide, &p.IHQData, &p.LatencyWeeks, &p.SIndex, &p.ScannerMagnification}
}

func (p *PDXTrial) Validate() error {
	var fe FieldErrors
	checkNonNegativeInt(&fe, "latency_weeks", p.LatencyWeeks)
	return fe.Err()
}

var pdoTrialSchema = &Schema{
	Table: TablePDOTrial,
	Key:   "id",
	Base:  TableTrial,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36, References: TableTrial},
		{Name: "drop_count", Kind: FieldInteger},
		{Name: "frozen_organoid_count", Kind: FieldInteger},
		{Name: "organoid_count", Kind: FieldInteger},
		{Name: "plate_type", Kind: FieldText, MaxLength: 50},
		{Name: "visualization_day", Kind: FieldInteger},
		{Name: "assessment", Kind: FieldText, MaxLength: 100},
	},
}

// PDOTrial extends a trial with patient-derived organoid data.
type PDOTrial struct {
	ID                  string  `json:"id"`
	DropCount           *int64  `json:"drop_count"`
	FrozenOrganoidCount *int64  `json:"frozen_organoid_count"`
	OrganoidCount       *int64  `json:"organoid_count"`
	PlateType           *string `json:"plate_type"`
	VisualizationDay    *int64  `json:"visualization_day"`
	Assessment          *string `json:"assessment"`
}

func (p *PDOTrial) Schema() *Schema  { return pdoTrialSchema }
func (p *PDOTrial) Key() string      { return p.ID }
func (p *PDOTrial) SetKey(id string) { p.ID = id }
func (p *PDOTrial) Columns() []any {
	return []any{&p.ID, &p.DropCount, &p.FrozenOrganoidCount, &p.OrganoidCount, &p.PlateType, &p.VisualizationDay, &p.Assessment}
}

func (p *PDOTrial) Validate() error {
	var fe FieldErrors
	checkNonNegativeInt(&fe, "drop_count", p.DropCount)
	checkNonNegativeInt(&fe, "frozen_organoid_count", p.FrozenOrganoidCount)
	checkNonNegativeInt(&fe, "organoid_count", p.OrganoidCount)
	checkNonNegativeInt(&fe, "visualization_day", p.VisualizationDay)
	if p.FrozenOrganoidCount != nil && p.OrganoidCount != nil && *p.FrozenOrganoidCount > *p.OrganoidCount {
		fe.Add("frozen_organoid_count", "must not exceed organoid_count")
	}
	return fe.Err()
}

var lcTrialSchema = &Schema{
	Table: TableLCTrial,
	Key:   "id",
	Base:  TableTrial,
	Fields: []Field{
		{Name: "id", Kind: FieldText, Required: true, MaxLength: 36, References: TableTrial},
		{Name: "confluence", Kind: FieldReal},
		{Name: "spheroids", Kind: FieldBool},
		{Name: "digestion_date", Kind: FieldDate},
		{Name: "cell_line", Kind: FieldText, MaxLength: 100},
		{Name: "plate_type", Kind: FieldText, MaxLength: 50},
	},
}

// LCTrial extends a trial with cell line culture data.
type LCTrial struct {
	ID            string   `json:"id"`
	Confluence    *float64 `json:"confluence"`
	Spheroids     *bool    `json:"spheroids"`
	DigestionDate *Date    `json:"digestion_date"`
	CellLine      *string  `json:"cell_line"`
	PlateType     *string  `json:"plate_type"`
}

func (l *LCTrial) Schema() *Schema  { return lcTrialSchema }
func (l *LCTrial) Key() string      { return l.ID }
func (l *LCTrial) SetKey(id string) { l.ID = id }
func (l *LCTrial) Columns() []any {
	return []any{&l.ID, &l.Confluence, &l.Spheroids, &l.DigestionDate, &l.CellLine, &l.PlateType}
}

func (l *LCTrial) Validate() error {
	var fe FieldErrors
	checkPercentage(&fe, "confluence", l.Confluence)
	return fe.Err()
}
