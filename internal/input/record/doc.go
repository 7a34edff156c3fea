// Package record implements the recording store.
//
// A Store accumulates captured key transitions into a Recording, stamping
// each event with its offset from the start of the session. Exactly one
// recording may be active at a time. Finished recordings are immutable and
// can be persisted to disk as a flat JSON array of
// {"key", "action", "offset_ms"} objects.
//
// The default recording lives at last_record.json under the per-user
// keyecho configuration directory.
package record
