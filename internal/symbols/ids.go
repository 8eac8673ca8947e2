package symbols

// SymbolID indexes a symbol in the table arena. 0 is reserved.
type SymbolID uint32

const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool {
	return id != NoSymbolID
}
