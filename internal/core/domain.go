package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindFixed    Kind = "fixed"
	KindVariable Kind = "variable"
)

type (
	// Kind classifies a record as a fixed or a variable outgoing. It is
	// user-asserted; nothing derives it.
	Kind string

	// Record is one user-entered expense. The aggregation layer never
	// mutates records; edits happen through the record service only.
	Record struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		Kind        Kind            `json:"kind"`
	}

	// CategoryDefinition is one entry of the static catalog. Color and
	// icon are opaque presentation tokens passed through to consumers.
	CategoryDefinition struct {
		Name          string           `json:"name"`
		Color         string           `json:"color"`
		Icon          string           `json:"icon"`
		MonthlyBudget *decimal.Decimal `json:"monthlyBudget,omitempty"`
	}

	// Catalog is the ordered list of known categories, fixed at build
	// time. Declaration order matters to consumers rendering legends.
	Catalog []CategoryDefinition
)

var (
	ErrNegativeAmount     = errors.New("negative amount")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidKind        = errors.New("invalid kind")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindFixed || k == KindVariable
}

// Validate checks the creation invariants. A record's category is not
// required to exist in the catalog; unknown categories are legal and
// aggregate by their literal string.
func (r Record) Validate() error {
	if r.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if r.Date.IsZero() {
		return ErrZeroDate
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if len(r.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

// Lookup returns the catalog entry with the given name.
func (c Catalog) Lookup(name string) (CategoryDefinition, bool) {
	for _, def := range c {
		if def.Name == name {
			return def, true
		}
	}
	return CategoryDefinition{}, false
}

// Budgeted returns the catalog entries that declare a monthly budget,
// in declaration order.
func (c Catalog) Budgeted() []CategoryDefinition {
	var out []CategoryDefinition
	for _, def := range c {
		if def.MonthlyBudget != nil {
			out = append(out, def)
		}
	}
	return out
}

// spend is the amount a record contributes to any aggregate. Negative
// amounts in stored data are clamped to zero here so a single malformed
// record can never poison a whole batch.
func spend(r Record) decimal.Decimal {
	if r.Amount.IsNegative() {
		return decimal.Zero
	}
	return r.Amount
}
