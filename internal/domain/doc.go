// Package domain contains the card entity, its status enumeration and the
// parsers that turn untyped request input into validated, normalized values.
// The parsers are the only place card invariants are enforced; stores trust
// whatever they receive from here.
package domain
