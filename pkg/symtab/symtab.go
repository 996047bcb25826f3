package symtab

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDuplicateSymbol = errors.New("symbol already defined")
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrUnknownIndex    = errors.New("unknown index")
	ErrAliasConflict   = errors.New("cannot alias two independently defined symbols")
	ErrUnresolvedNext  = errors.New("deferred-prefix marker left unresolved")
)

// NextMarker is the deferred-prefix marker.  A symbol containing it is
// rewritten by substituting the following scope's prefix before the symbol
// ever reaches the table.
const NextMarker = "!next."

// ApplyPrefix prepends prefix to sym and resolves any deferred-prefix
// marker against nextPrefix.  A marker with no prefix context is an error:
// the symbol cannot name anything until the surrounding scope is known.
func ApplyPrefix(sym, prefix, nextPrefix string) (string, error) {
	if prefix != "" {
		sym = prefix + sym
	}
	if !strings.Contains(sym, NextMarker) {
		return sym, nil
	}
	if prefix == "" || nextPrefix == "" {
		return "", fmt.Errorf("%w in %q", ErrUnresolvedNext, sym)
	}
	return strings.ReplaceAll(sym, prefix+NextMarker, nextPrefix), nil
}

// SymbolTable maps symbols to qubit indices and back.  Several symbols may
// alias one index; every index present has at least one symbol.  Indices
// are handed out in increasing order from 0 and are never reused once a
// merge retires them.
//
// The table is exclusively owned by the compiler driver while the program
// is being expanded.  Freeze marks the end of that phase; any mutation
// afterwards is a programming error and panics.
type SymbolTable struct {
	symToNum map[string]int
	numToSym map[int]map[string]bool
	nextNum  int
	frozen   bool
}

func New() *SymbolTable {
	return &SymbolTable{
		symToNum: make(map[string]int),
		numToSym: make(map[int]map[string]bool),
	}
}

// Freeze makes the table read-only.
func (t *SymbolTable) Freeze() {
	t.frozen = true
}

func (t *SymbolTable) mutable(op string) {
	if t.frozen {
		panic("symtab: " + op + " on a frozen table")
	}
}

// Define assigns the next available index to an unseen symbol.
func (t *SymbolTable) Define(sym string) (int, error) {
	t.mutable("Define")
	if _, ok := t.symToNum[sym]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateSymbol, sym)
	}
	return t.define(sym), nil
}

func (t *SymbolTable) define(sym string) int {
	num := t.nextNum
	t.symToNum[sym] = num
	t.numToSym[num] = map[string]bool{sym: true}
	t.nextNum++
	return num
}

// ResolveOrDefine returns the symbol's index, allocating one if needed.
func (t *SymbolTable) ResolveOrDefine(sym string) int {
	if num, ok := t.symToNum[sym]; ok {
		return num
	}
	t.mutable("ResolveOrDefine")
	return t.define(sym)
}

// Lookup reports the symbol's index and whether it is defined.
func (t *SymbolTable) Lookup(sym string) (int, bool) {
	num, ok := t.symToNum[sym]
	return num, ok
}

// IndexOf maps a symbol to its index.
func (t *SymbolTable) IndexOf(sym string) (int, error) {
	num, ok := t.symToNum[sym]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	return num, nil
}

// SymbolsOf returns, in sorted order, every symbol bound to an index.
func (t *SymbolTable) SymbolsOf(num int) ([]string, error) {
	set, ok := t.numToSym[num]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIndex, num)
	}
	syms := make([]string, 0, len(set))
	for s := range set {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms, nil
}

// HasIndex reports whether an index is live (defined and not retired).
func (t *SymbolTable) HasIndex(num int) bool {
	_, ok := t.numToSym[num]
	return ok
}

// Alias makes two symbols name the same index.  Undefined symbols are
// defined on the fly.  Aliasing two symbols that were each defined
// independently fails with ErrAliasConflict: their numeric weights would
// have to be merged elsewhere, which this table does not do.  On failure
// the table is left unchanged.
func (t *SymbolTable) Alias(symA, symB string) (int, error) {
	t.mutable("Alias")
	numA, okA := t.symToNum[symA]
	numB, okB := t.symToNum[symB]
	if okA && okB {
		if numA == numB {
			return numA, nil
		}
		return 0, fmt.Errorf("%w: %q and %q", ErrAliasConflict, symA, symB)
	}
	if !okA {
		numA = t.define(symA)
	}
	if !okB {
		numB = t.define(symB)
	}
	if numA == numB {
		return numA, nil
	}

	// Fold the symbols of the retired (higher) index into the surviving
	// (lower) one, then rebuild the forward map from the reverse map so
	// the two can never disagree.
	keep, drop := numA, numB
	if keep > drop {
		keep, drop = drop, keep
	}
	for s := range t.numToSym[drop] {
		t.numToSym[keep][s] = true
	}
	delete(t.numToSym, drop)
	t.symToNum = make(map[string]int, len(t.symToNum))
	for num, set := range t.numToSym {
		for s := range set {
			t.symToNum[s] = num
		}
	}
	return keep, nil
}

// ReplaceAll renames oldSyms[i] to newSyms[i], preserving each symbol's
// index.  The rename is atomic: on any failure the table is unchanged.
func (t *SymbolTable) ReplaceAll(oldSyms, newSyms []string) error {
	t.mutable("ReplaceAll")
	if len(oldSyms) != len(newSyms) {
		return fmt.Errorf("rename of %d symbols to %d names", len(oldSyms), len(newSyms))
	}
	symToNum := make(map[string]int, len(t.symToNum))
	for s, n := range t.symToNum {
		symToNum[s] = n
	}
	nums := make([]int, 0, len(oldSyms))
	for _, s := range oldSyms {
		num, ok := symToNum[s]
		if !ok {
			return fmt.Errorf("rename of nonexistent symbol %q: %w", s, ErrUnknownSymbol)
		}
		nums = append(nums, num)
		delete(symToNum, s)
	}
	for i, s := range newSyms {
		symToNum[s] = nums[i]
	}
	t.overwrite(symToNum)
	return nil
}

// overwrite replaces the table's contents with a given forward map and
// regenerates the reverse map from it.  nextNum never moves backwards:
// retired indices stay retired.
func (t *SymbolTable) overwrite(symToNum map[string]int) {
	t.symToNum = symToNum
	t.numToSym = make(map[int]map[string]bool, len(symToNum))
	for s, n := range symToNum {
		set, ok := t.numToSym[n]
		if !ok {
			set = make(map[string]bool)
			t.numToSym[n] = set
		}
		set[s] = true
		if n >= t.nextNum {
			t.nextNum = n + 1
		}
	}
}

// MaxIndex returns the highest index handed out so far, or -1 for an
// empty table.
func (t *SymbolTable) MaxIndex() int {
	return t.nextNum - 1
}

// Len returns the number of defined symbols.
func (t *SymbolTable) Len() int {
	return len(t.symToNum)
}

// Indices returns every live index in increasing order.
func (t *SymbolTable) Indices() []int {
	nums := make([]int, 0, len(t.numToSym))
	for n := range t.numToSym {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Item is one symbol-to-index binding.
type Item struct {
	Symbol string
	Index  int
}

// Items returns every binding sorted by symbol, for serializers that
// need a stable order.
func (t *SymbolTable) Items() []Item {
	items := make([]Item, 0, len(t.symToNum))
	for s, n := range t.symToNum {
		items = append(items, Item{Symbol: s, Index: n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Symbol < items[j].Symbol })
	return items
}
