// Package options defines what the resolvers read and which settings exist.
//
// Source is the read-only contract over the three collaborators (persisted
// settings, feature flags, restricted-host signal). Composite joins the
// concrete collaborators into one Source.
//
// Schema is the explicit set of option descriptors. It is built once at the
// composition root and passed to whoever needs it; there is no package-level
// registry.
package options
