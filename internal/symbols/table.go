package symbols

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Table stores declared symbols in a compact slice-based arena.
type Table struct {
	data []Symbol
}

// NewTable creates a symbol arena with an optional capacity hint.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 64
	}
	return &Table{
		data: make([]Symbol, 1, capacity+1), // index 0 reserved for NoSymbolID
	}
}

// New allocates a symbol in the arena and returns its ID.
func (t *Table) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	id := SymbolID(value)
	t.data = append(t.data, *sym)
	return id
}

// Get returns a symbol pointer or nil for an invalid ID.
func (t *Table) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Len reports the number of stored symbols excluding the sentinel.
func (t *Table) Len() int { return len(t.data) - 1 }

// Data exposes the arena storage without the sentinel.
func (t *Table) Data() []Symbol {
	if len(t.data) <= 1 {
		return nil
	}
	return t.data[1:]
}

// All calls fn for every symbol in declaration order.
func (t *Table) All(fn func(id SymbolID, sym *Symbol)) {
	for i := 1; i < len(t.data); i++ {
		fn(SymbolID(i), &t.data[i])
	}
}

// FindFunction resolves a function symbol by case-insensitive name.
func (t *Table) FindFunction(name string) SymbolID {
	for i := 1; i < len(t.data); i++ {
		s := &t.data[i]
		if s.Kind == SymbolFunction && strings.EqualFold(s.Name, name) {
			return SymbolID(i)
		}
	}
	return NoSymbolID
}

// FindByName resolves any symbol by case-insensitive name, preferring
// earlier declarations.
func (t *Table) FindByName(name string) SymbolID {
	for i := 1; i < len(t.data); i++ {
		if strings.EqualFold(t.data[i].Name, name) {
			return SymbolID(i)
		}
	}
	return NoSymbolID
}

// FirstFunction returns the first declared function, if any.
func (t *Table) FirstFunction() SymbolID {
	for i := 1; i < len(t.data); i++ {
		if t.data[i].Kind == SymbolFunction {
			return SymbolID(i)
		}
	}
	return NoSymbolID
}

// ParametersOf returns the parameters of a function in declaration order.
func (t *Table) ParametersOf(fn SymbolID) []SymbolID {
	var out []SymbolID
	for i := 1; i < len(t.data); i++ {
		s := &t.data[i]
		if s.Kind == SymbolParameter && s.Parent == fn {
			out = append(out, SymbolID(i))
		}
	}
	return out
}
