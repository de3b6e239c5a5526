package anuncio

import "time"

// Field names a logical value extracted from a listing page.
type Field string

// Fields extracted from a vehicle listing.
const (
	FieldSeller         Field = "seller"
	FieldBrand          Field = "brand"
	FieldModel          Field = "model"
	FieldVersion        Field = "version"
	FieldYear           Field = "year"
	FieldPrice          Field = "price"
	FieldReferencePrice Field = "reference_price"
	FieldAveragePrice   Field = "average_price"
	FieldMileage        Field = "mileage"
	FieldPhone          Field = "phone"
	FieldNeighbourhood  Field = "neighbourhood"
	FieldLocation       Field = "location"
)

// StrategyGuessed marks a value recovered by the language-model fallback
// rather than by a position in the field's strategy chain.
const StrategyGuessed = -2

// Absence reasons recorded on a Result.
const (
	// ReasonNotAvailable marks an optional field the page simply does not
	// carry. A normal terminal state, not a failure.
	ReasonNotAvailable = "not available"

	// ReasonExhausted marks a field whose full strategy chain was tried
	// without a valid candidate.
	ReasonExhausted = "strategies exhausted"

	// ReasonEmpty marks a candidate that normalization reduced to nothing.
	ReasonEmpty = "normalized to empty"
)

// FieldSpec declares how one logical field is classified and cleaned.
// The locating strategies themselves are document-tree specific and live
// with the resolver implementation; a FieldSpec is immutable once declared.
type FieldSpec struct {
	Field    Field
	Required bool

	// Monetary fields get the currency prefix stripped during
	// normalization.
	Monetary bool

	// Disambiguate, when set, accepts or rejects a candidate by content
	// shape. Used where one physical selector backs two logical fields
	// (e.g. a 4-digit token is a year, anything else a brand).
	Disambiguate func(text string) bool
}

// Candidate is a located but not-yet-normalized text value.
// Transient; discarded after resolution.
type Candidate struct {
	Text     string
	Strategy int
}

// Result records the outcome of extracting one field.
// Immutable once produced. Value is either a non-empty normalized string
// (Found true) or absent (Found false with a Reason), never whitespace
// or raw unnormalized text.
type Result struct {
	Field    Field  `json:"field"`
	Value    string `json:"value,omitempty"`
	Found    bool   `json:"found"`
	Required bool   `json:"required"`
	Strategy int    `json:"strategy"` // index of the winning strategy, -1 if absent
	Reason   string `json:"reason,omitempty"`
}

// Report aggregates the extraction results for one processed page.
// Exactly one Result per declared FieldSpec, in declaration order.
// Created once per page, never mutated after assembly.
type Report struct {
	URL         string    `json:"url"`
	Backend     Backend   `json:"backend"`
	ContentHash string    `json:"contentHash,omitempty"`
	Results     []Result  `json:"results"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Result returns the result for the named field.
func (r *Report) Result(f Field) (Result, bool) {
	for _, res := range r.Results {
		if res.Field == f {
			return res, true
		}
	}
	return Result{}, false
}

// Value returns the resolved value for the named field, or "" if absent.
func (r *Report) Value(f Field) string {
	res, ok := r.Result(f)
	if !ok || !res.Found {
		return ""
	}
	return res.Value
}

// SuccessRatio reports the fraction of required fields that resolved.
// Optional fields do not count either way. Returns 1 when no required
// fields are declared.
func (r *Report) SuccessRatio() float64 {
	var required, found int
	for _, res := range r.Results {
		if !res.Required {
			continue
		}
		required++
		if res.Found {
			found++
		}
	}
	if required == 0 {
		return 1
	}
	return float64(found) / float64(required)
}

// Extractor runs the declared field chains against page HTML and
// assembles a Report. Implementations must not mutate the parsed tree
// and must isolate field failures from one another.
type Extractor interface {
	Extract(html string) (*Report, error)
}
