package nphase

// ActiveHooks is the set of hook capabilities a collider opts into.
type ActiveHooks uint8

const (
	// HookModifyContacts makes the narrow phase call CollisionHooks.ModifyContacts for the collider's pairs.
	HookModifyContacts ActiveHooks = 1 << iota
)

// Contains reports whether every hook in other is in h.
func (h ActiveHooks) Contains(other ActiveHooks) bool {
	return h&other == other
}

// Union returns the hooks active on either side.
func (h ActiveHooks) Union(other ActiveHooks) ActiveHooks {
	return h | other
}

// CollisionHooks lets the host reject or edit contacts before they are committed.
//
// ModifyContacts is called from several workers at once. Side effects on shared state
// must be queued on commands, which are applied after collection has finished.
type CollisionHooks interface {
	// ModifyContacts may edit contacts. Returning false drops the pair for this step.
	ModifyContacts(contacts *Contacts, commands *Commands) bool
}

// NoHooks accepts every pair unchanged.
type NoHooks struct{}

func (NoHooks) ModifyContacts(*Contacts, *Commands) bool {
	return true
}

// ModifyContactsFunc adapts a function to CollisionHooks.
type ModifyContactsFunc func(contacts *Contacts, commands *Commands) bool

func (f ModifyContactsFunc) ModifyContacts(contacts *Contacts, commands *Commands) bool {
	return f(contacts, commands)
}
