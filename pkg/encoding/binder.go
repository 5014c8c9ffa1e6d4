package encoding

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/netchart/pkg/chart"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/table"
)

// Property describes how one styling parameter reaches the chart.
type Property struct {
	// Name is the parameter name reported in errors.
	Name string

	// Accepts lists the constant kinds the parameter takes. Accepting
	// KindText also accepts KindField. Unset is always accepted.
	Accepts []Kind

	// Channel receives column bindings.
	Channel chart.Channel

	// MarkKey receives constant values.
	MarkKey string

	// Strict parameters never treat strings literally: a string that names
	// no column is an error.
	Strict bool

	// Nullable parameters accept None, which leaves the property unset.
	Nullable bool
}

func (p Property) accepts(k Kind) bool {
	switch k {
	case KindUnset:
		return true
	case KindNone:
		return p.Nullable
	case KindField:
		return slices.Contains(p.Accepts, KindText) || slices.Contains(p.Accepts, KindField)
	}
	return slices.Contains(p.Accepts, k)
}

func (p Property) typeError(v Value) error {
	allowed := make([]string, 0, len(p.Accepts)+1)
	for _, k := range p.Accepts {
		allowed = append(allowed, k.String())
	}
	if p.Nullable {
		allowed = append(allowed, KindNone.String())
	}
	return errors.New(errors.ErrCodeInvalidType,
		"%s must be one of [%s], got %s %s", p.Name, strings.Join(allowed, ", "), v.Kind(), v)
}

// Binder resolves Values against a table and accumulates the resulting mark
// properties and channel encodings.
type Binder struct {
	data     *table.Table
	legend   bool
	mark     map[string]any
	encoding chart.Encoding
}

// NewBinder creates a binder over data. legend controls whether bound
// channels show a legend.
func NewBinder(data *table.Table, legend bool) *Binder {
	return &Binder{
		data:     data,
		legend:   legend,
		mark:     map[string]any{},
		encoding: chart.Encoding{},
	}
}

// Mark returns the accumulated constant mark properties.
func (b *Binder) Mark() map[string]any { return b.mark }

// Encoding returns the accumulated channel encodings.
func (b *Binder) Encoding() chart.Encoding { return b.encoding }

// Set stores a constant mark property directly.
func (b *Binder) Set(key string, value any) { b.mark[key] = value }

// Encode binds ch to a column directly, without legend or scale.
func (b *Binder) Encode(ch chart.Channel, def chart.FieldDef) { b.encoding[ch] = def }

// Override merges raw mark properties and encodings over everything bound so
// far. Nothing is validated.
func (b *Binder) Override(mark map[string]any, encode map[string]any) {
	maps.Copy(b.mark, mark)
	for k, v := range encode {
		b.encoding[chart.Channel(k)] = v
	}
}

// FieldDef types a column binding from the column's values.
func (b *Binder) FieldDef(column string) chart.FieldDef {
	typ := chart.Nominal
	if b.data.Kind(column) == table.Numeric {
		typ = chart.Quantitative
	}
	return chart.FieldDef{Field: column, Type: typ, NoLegend: !b.legend}
}

// Bind applies p to v:
//   - a kind p does not accept fails with INVALID_TYPE;
//   - a field, or a string naming a column, binds p's channel;
//   - any other string is an UNRESOLVED_REFERENCE when p is strict and a
//     literal mark property otherwise;
//   - numbers and dash patterns become mark properties.
func (b *Binder) Bind(p Property, v Value) error {
	if !p.accepts(v.Kind()) {
		return p.typeError(v)
	}
	switch v.Kind() {
	case KindNumber:
		b.mark[p.MarkKey] = v.Num()
	case KindDash:
		d := v.DashGap()
		b.mark[p.MarkKey] = []float64{d[0], d[1]}
	case KindText, KindField:
		if b.data.HasColumn(v.Str()) {
			b.encoding[p.Channel] = b.FieldDef(v.Str())
			return nil
		}
		if p.Strict || v.Kind() == KindField {
			return b.unresolved(p.Name, v.Str())
		}
		b.mark[p.MarkKey] = v.Str()
	}
	return nil
}

// BindColor binds a colour parameter. Without cmap it behaves like Bind.
// With cmap the value must name a numeric column, which is bound through a
// scale using the cmap colour scheme.
func (b *Binder) BindColor(p Property, v Value, cmap string) error {
	if cmap == "" {
		return b.Bind(p, v)
	}
	if v.Kind() != KindText && v.Kind() != KindField {
		return errors.New(errors.ErrCodeInvalidType,
			"%s must name a numeric attribute to use with cmap %s, got %s %s", p.Name, cmap, v.Kind(), v)
	}
	column := v.Str()
	if !b.data.HasColumn(column) {
		return b.unresolved(p.Name, column)
	}
	if b.data.Kind(column) != table.Numeric {
		return errors.New(errors.ErrCodeInvalidType,
			"the attribute (%s) to use with cmap %s is non-numeric", column, cmap)
	}
	def := b.FieldDef(column)
	def.Scale = &chart.Scale{Scheme: cmap}
	b.encoding[p.Channel] = def
	return nil
}

// Tooltip binds the tooltip channel to one or more columns.
func (b *Binder) Tooltip(v Value) error {
	var names []string
	switch v.Kind() {
	case KindUnset, KindNone:
		return nil
	case KindText, KindField:
		names = []string{v.Str()}
	case KindFields:
		names = v.Names()
	default:
		return errors.New(errors.ErrCodeInvalidType,
			"tooltip must be a list of attribute names, got %s %s", v.Kind(), v)
	}

	defs := make([]chart.FieldDef, 0, len(names))
	for _, name := range names {
		if !b.data.HasColumn(name) {
			return b.unresolved("tooltip", name)
		}
		def := b.FieldDef(name)
		def.NoLegend = false
		defs = append(defs, def)
	}
	b.encoding[chart.Tooltip] = defs
	return nil
}

func (b *Binder) unresolved(param, column string) error {
	return errors.New(errors.ErrCodeUnresolvedReference,
		"%s was set to %q, which matches no attribute; available attributes: [%s]",
		param, column, strings.Join(b.data.Columns(), ", "))
}
