// README: Common identifier type shared across modules.
package types

// ID is an opaque entity identifier (UUID or hex string depending on the generator).
type ID string
