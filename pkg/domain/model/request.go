package model

// Request is the immutable per-invocation configuration threaded through
// every component call. It is built once from CLI arguments and never
// mutated afterwards.
type Request struct {
	Identifier  string
	Destination string
	Quiet       bool
	Force       bool
	Jobs        int
}
