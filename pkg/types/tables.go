package types

import "sort"

// Table names, also the entity-type tokens accepted by the engine and the
// transports.
const (
	TablePatient           = "patient"
	TableTumor             = "tumor"
	TableLiquidBiopsy      = "liquid_biopsy"
	TableBiomodel          = "biomodel"
	TablePassage           = "passage"
	TableTrial             = "trial"
	TablePDXTrial          = "pdx_trial"
	TablePDOTrial          = "pdo_trial"
	TableLCTrial           = "lc_trial"
	TableImplant           = "implant"
	TableSizeRecord        = "size_record"
	TableMouse             = "mouse"
	TableFACS              = "facs"
	TableUsageRecord       = "usage_record"
	TableImage             = "image"
	TableCryopreservation  = "cryopreservation"
	TableGenomicSequencing = "genomic_sequencing"
	TableMolecularData     = "molecular_data"
)

// StandardTableNames lists every table in dependency order: a table appears
// after every table it references.
var StandardTableNames = []string{
	TablePatient,
	TableTumor,
	TableLiquidBiopsy,
	TableBiomodel,
	TablePassage,
	TableTrial,
	TablePDXTrial,
	TablePDOTrial,
	TableLCTrial,
	TableImplant,
	TableSizeRecord,
	TableMouse,
	TableFACS,
	TableUsageRecord,
	TableImage,
	TableCryopreservation,
	TableGenomicSequencing,
	TableMolecularData,
}

var constructors = map[string]func() Entity{
	TablePatient:           func() Entity { return &Patient{} },
	TableTumor:             func() Entity { return &Tumor{} },
	TableLiquidBiopsy:      func() Entity { return &LiquidBiopsy{} },
	TableBiomodel:          func() Entity { return &Biomodel{} },
	TablePassage:           func() Entity { return &Passage{} },
	TableTrial:             func() Entity { return &Trial{} },
	TablePDXTrial:          func() Entity { return &PDXTrial{} },
	TablePDOTrial:          func() Entity { return &PDOTrial{} },
	TableLCTrial:           func() Entity { return &LCTrial{} },
	TableImplant:           func() Entity { return &Implant{} },
	TableSizeRecord:        func() Entity { return &SizeRecord{} },
	TableMouse:             func() Entity { return &Mouse{} },
	TableFACS:              func() Entity { return &FACS{} },
	TableUsageRecord:       func() Entity { return &UsageRecord{} },
	TableImage:             func() Entity { return &Image{} },
	TableCryopreservation:  func() Entity { return &Cryopreservation{} },
	TableGenomicSequencing: func() Entity { return &GenomicSequencing{} },
	TableMolecularData:     func() Entity { return &MolecularData{} },
}

// NewEntity returns a zero entity for the table. An unregistered name is
// reported as a not-found error.
func NewEntity(table string) (Entity, error) {
	ctor, ok := constructors[table]
	if !ok {
		return nil, UnknownTable(table)
	}
	return ctor(), nil
}

// SchemaFor returns the schema of the named table.
func SchemaFor(table string) (*Schema, error) {
	e, err := NewEntity(table)
	if err != nil {
		return nil, err
	}
	return e.Schema(), nil
}

// Subtypes returns the tables whose Base is the given table, sorted by name.
func Subtypes(base string) []string {
	var subs []string
	for name, ctor := range constructors {
		if ctor().Schema().Base == base {
			subs = append(subs, name)
		}
	}
	sort.Strings(subs)
	return subs
}
