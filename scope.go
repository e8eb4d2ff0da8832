package container

// CreateScope returns a child container with empty local state that falls
// back to this container for names it does not know. Local registrations
// shadow same-named parent registrations for resolutions initiated from the
// child; the parent's own resolutions never see them.
//
// A scope shares no mutable state with its parent, so per-request or
// per-test scopes can be created and discarded freely. The parent must
// outlive its scopes.
func (c *Container) CreateScope() *Container {
	child := New(WithLogger(c.log))
	child.parent = c
	return child
}
