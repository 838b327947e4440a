package module

// Base carries the identity metadata shared by every module
// implementation. Modules embed it and implement Start/Stop themselves.
type Base struct {
	id   Identity
	deps []Identity
}

// NewBase creates the embedded metadata for a module.
func NewBase(id Identity, deps ...Identity) Base {
	return Base{id: id, deps: deps}
}

func (b Base) Identity() Identity {
	return b.id
}

func (b Base) Dependencies() []Identity {
	return b.deps
}
