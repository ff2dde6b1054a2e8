// Package library discovers the MP3 files to combine.
//
// [Scan] lists the MP3 files of a single folder in lexicographic order and validates that there is
// something to work with. [Probe] reads optional display metadata (ID3 title and artist, and an
// estimated duration from MPEG frame headers) for the interactive list. Probe failures are never fatal.
package library
