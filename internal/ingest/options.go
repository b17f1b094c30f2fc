package ingest

// MaxFileSize is the default upload ceiling: 50 MiB.
const MaxFileSize = 50 * 1024 * 1024

// DuplicatePolicy controls how repeated invoice numbers are treated.
// One invoice legitimately spans multiple line-item rows, so the default
// allows repeats; RejectDuplicates exists for datasets where InvoiceNo is
// expected to be unique per row.
type DuplicatePolicy string

const (
	AllowDuplicates  DuplicatePolicy = "allow"
	RejectDuplicates DuplicatePolicy = "reject"
)

// RegionPolicy controls the strictness of the island-name reference check.
type RegionPolicy string

const (
	// RegionFreeText accepts any non-empty region value.
	RegionFreeText RegionPolicy = "off"
	// RegionWarn emits an advisory warning for values outside the
	// reference list.
	RegionWarn RegionPolicy = "warn"
	// RegionReject turns an unrecognized value into a row error.
	RegionReject RegionPolicy = "reject"
)

// Options configures a validation run. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	Schema          Schema
	MaxFileSize     int64
	MinRows         int
	MinCategories   int
	MinRegions      int
	DuplicatePolicy DuplicatePolicy
	RegionPolicy    RegionPolicy
	Regions         []string
}

// DefaultOptions returns the canonical configuration for the DataNiaga
// transaction schema.
func DefaultOptions() Options {
	return Options{
		Schema:          DefaultSchema(),
		MaxFileSize:     MaxFileSize,
		MinRows:         100,
		MinCategories:   3,
		MinRegions:      2,
		DuplicatePolicy: AllowDuplicates,
		RegionPolicy:    RegionWarn,
		Regions:         DefaultRegions(),
	}
}

// DefaultRegions returns the reference list of Indonesian island names
// accepted for the PULAU column.
func DefaultRegions() []string {
	return []string{"JAWA", "SUMATERA", "BALI", "KALIMANTAN", "SULAWESI", "PAPUA", "NTT", "NTB"}
}
