// Package store owns the normalized in-memory state for one active practice
// session: keyed entity collections, the active-session pointer, and the small
// view-state record tracking the current round and participant.
//
// The store performs no I/O and enforces no referential integrity on results;
// absence of data degrades to empty derived views rather than failure. It is
// exclusively owned by one logical caller. Hosts with concurrent writers must
// serialize mutations externally (the app layer does this).
//
// Every real mutation bumps a revision counter. Setters are guaranteed no-ops
// when the value is unchanged: no mutation, no revision bump, so downstream
// change notifications cannot loop.
package store
