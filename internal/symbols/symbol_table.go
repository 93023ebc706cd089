package symbols

import (
	"github.com/sigil-lang/sigil/internal/token"
	"github.com/sigil-lang/sigil/internal/types"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude ScopeType = iota // Built-in declarations (Promise, Generator, ...)
	ScopeGlobal                   // User code top-level
	ScopeFunction
	ScopeBlock
)

const (
	VariableSymbol SymbolKind = iota
	TypeSymbol
	TypeParamSymbol
)

// Symbol is one named binding. Value bindings carry their type in
// Type; type declarations carry the declaration type (Alias,
// Interface or Class); type parameters carry the TypeParam they were
// declared from.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Type      types.Type
	TypeParam *types.TypeParam // set for TypeParamSymbol
	IsConst   bool
	IsBuiltin bool
	IsPending bool // forward declaration awaiting its real type
	DefTok    token.Token
}

type SymbolTable struct {
	store     map[string]Symbol
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table.
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

// IsFunctionScope returns true if this symbol table corresponds to a
// function scope.
func (s *SymbolTable) IsFunctionScope() bool {
	return s.scopeType == ScopeFunction
}

// IsGlobalScope returns true if this symbol table is a top-level user
// scope.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

func (s *SymbolTable) DefineVariable(name string, t types.Type, isConst bool, tok token.Token) Symbol {
	sym := Symbol{Name: name, Kind: VariableSymbol, Type: t, IsConst: isConst, DefTok: tok}
	s.store[name] = sym
	return sym
}

func (s *SymbolTable) DefineType(name string, t types.Type, tok token.Token) Symbol {
	sym := Symbol{Name: name, Kind: TypeSymbol, Type: t, DefTok: tok}
	s.store[name] = sym
	return sym
}

func (s *SymbolTable) DefineTypeParam(name string, tp *types.TypeParam, tok token.Token) Symbol {
	sym := Symbol{Name: name, Kind: TypeParamSymbol, TypeParam: tp, DefTok: tok}
	s.store[name] = sym
	return sym
}

// DefinePending binds a name before its real type is known, so
// forward references resolve instead of failing. The later definitive
// define overwrites it.
func (s *SymbolTable) DefinePending(name string, t types.Type, tok token.Token) Symbol {
	sym := Symbol{Name: name, Kind: VariableSymbol, Type: t, IsPending: true, DefTok: tok}
	s.store[name] = sym
	return sym
}

// OverrideVariable rebinds name with var-like override semantics: a
// pending or plain variable binding is replaced, a const or type
// binding reports a conflict to the caller.
func (s *SymbolTable) OverrideVariable(name string, t types.Type, tok token.Token) (Symbol, bool) {
	if existing, ok := s.store[name]; ok && !existing.IsPending {
		if existing.Kind != VariableSymbol || existing.IsConst {
			return existing, false
		}
	}
	return s.DefineVariable(name, t, false, tok), true
}

func (s *SymbolTable) DefineBuiltinType(name string, t types.Type) Symbol {
	sym := Symbol{Name: name, Kind: TypeSymbol, Type: t, IsBuiltin: true}
	s.store[name] = sym
	return sym
}

func (s *SymbolTable) DefineBuiltinVariable(name string, t types.Type) Symbol {
	sym := Symbol{Name: name, Kind: VariableSymbol, Type: t, IsBuiltin: true, IsConst: true}
	s.store[name] = sym
	return sym
}

// Resolve walks the scope chain looking for name.
func (s *SymbolTable) Resolve(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	if !ok && s.outer != nil {
		return s.outer.Resolve(name)
	}
	return sym, ok
}

// ResolveLocal looks name up in this scope only.
func (s *SymbolTable) ResolveLocal(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

// IsDefinedLocally reports whether name is bound in this scope,
// ignoring outer scopes.
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}
