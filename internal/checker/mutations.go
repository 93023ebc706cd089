package checker

import (
	"github.com/sigil-lang/sigil/internal/ast"
	"github.com/sigil-lang/sigil/internal/types"
)

// FnMutations holds deferred facts about one function node, recorded
// during validation and applied by downstream consumers (declaration
// emission reads the inferred return type from here).
type FnMutations struct {
	RetTy types.Type
}

// Mutations is the ledger of per-function inference results, keyed by
// the parser-assigned node id.
type Mutations struct {
	forFns map[ast.NodeID]*FnMutations
}

func NewMutations() *Mutations {
	return &Mutations{forFns: make(map[ast.NodeID]*FnMutations)}
}

// ForFn returns the mutation entry for a function node, creating it
// on first access.
func (m *Mutations) ForFn(id ast.NodeID) *FnMutations {
	entry, ok := m.forFns[id]
	if !ok {
		entry = &FnMutations{}
		m.forFns[id] = entry
	}
	return entry
}

// SetRetTyIfAbsent records an inferred return type unless one was
// already recorded. The first write wins; later writes are dropped.
func (f *FnMutations) SetRetTyIfAbsent(t types.Type) bool {
	if f.RetTy != nil {
		return false
	}
	f.RetTy = t
	return true
}

// RetTy returns the recorded return type for a function node, if any.
func (m *Mutations) RetTy(id ast.NodeID) (types.Type, bool) {
	entry, ok := m.forFns[id]
	if !ok || entry.RetTy == nil {
		return nil, false
	}
	return entry.RetTy, true
}

// ReturnTypes snapshots the ledger for handoff to later pipeline
// stages.
func (m *Mutations) ReturnTypes() map[ast.NodeID]types.Type {
	out := make(map[ast.NodeID]types.Type, len(m.forFns))
	for id, entry := range m.forFns {
		if entry.RetTy != nil {
			out[id] = entry.RetTy
		}
	}
	return out
}
