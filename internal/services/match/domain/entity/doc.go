// Package entity defines the normalized records a practice-match session is
// made of: the session itself, its teams, participants, rounds, and results.
//
// Records are identified by opaque string ids and are immutable once written,
// except a round's status, which only ever moves forward
// (pending -> active -> completed). The round completion rule lives here
// because it is a pure function of a round's shape and its recorded results.
package entity
