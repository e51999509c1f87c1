package defs

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope and returns its ID.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ScopeOwner) ScopeID {
	id := ScopeID(len(s.data))
	s.data = append(s.data, Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
	})
	if parent.IsValid() {
		if parentScope := s.Get(parent); parentScope != nil {
			parentScope.Children = append(parentScope.Children, id)
		}
	}
	return id
}

// Get returns the scope pointer or nil if the ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports the total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Defs stores declared definitions in a compact arena.
type Defs struct {
	data []Def
}

// NewDefs creates a def arena with optional capacity hint.
func NewDefs(capacity uint32) *Defs {
	if capacity == 0 {
		capacity = 64
	}
	return &Defs{
		data: make([]Def, 1, capacity+1), // index 0 reserved for NoDefID
	}
}

// New allocates a def in the arena and returns its ID.
func (d *Defs) New(def Def) DefID {
	id := DefID(len(d.data))
	d.data = append(d.data, def)
	return id
}

// Get returns a def pointer or nil for an invalid ID.
func (d *Defs) Get(id DefID) *Def {
	if !id.IsValid() || int(id) >= len(d.data) {
		return nil
	}
	return &d.data[id]
}

// Len reports the number of stored defs excluding the sentinel.
func (d *Defs) Len() int { return len(d.data) - 1 }
