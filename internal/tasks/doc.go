// Package tasks assembles the final MP3 from an ordered playlist with real-time progress reporting.
//
// # Core Operation
//
// [Assembler.Assemble] walks the playlist strictly in order:
//
//  1. Decodes each track through the [Codec]
//     - a decode failure is recorded in [AssemblyResult.Skipped] and the run continues
//  2. Inserts a [Gap] of silence between consecutive successfully decoded tracks
//     - never before the first, never after the last, never doubled around a skip
//  3. Encodes the buffer at [Bitrate] kbps and writes it to the output path
//
// Nothing is written when every track was skipped ([shared.ErrEmptyResult]); any
// failure while writing is reported as [shared.ErrWrite].
//
// # Progress Reporting
//
// Progress updates are sent on an optional channel using select with default, so
// reporting never blocks the assembly.
//
// # Codec
//
// The [Codec] interface hides the audio backend (decode, silence, encode). The
// production backend lives in the audio package; tests use a fake that only tracks durations.
package tasks
