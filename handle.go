package modular

// Handles are location descriptors: an integer slot plus a compile-time type
// tag. They never dereference anything themselves, the runtime exchanges them
// for the slot contents. A handle is only meaningful for the runtime built
// from the builder that issued it, using it against another runtime is a
// defect in graph construction and panics on the first type mismatch.

// StateHandle addresses a registered state object of type T.
type StateHandle[T any] struct {
	slot int
}

// ModulatorHandle addresses a registered modulator instance of type M.
type ModulatorHandle[M any] struct {
	slot int
}

// ParamHandle addresses a registered parameter set of type P.
type ParamHandle[P any] struct {
	slot int
}
