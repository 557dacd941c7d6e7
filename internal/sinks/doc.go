// Package sinks owns the per-slot output files of a sampling phase.
//
// Design:
//   • All files of a phase are opened before the first record is read.
//   • Open is all-or-nothing: a failed open closes whatever it had opened.
//   • Close flushes and closes every file exactly once, on success and on
//     error paths alike; callers defer it right after a successful Open.
package sinks
