// Package models defines the domain entities shared by the scanner, the selection list and the assembler.
//
//   - [Track] : one MP3 file discovered in the input folder (identity is its absolute path)
//   - [Playlist] : the ordered set of tracks; its order is the combine order
//
// A [Playlist] is built once from the scanner output and mutated only through [Playlist.Swap].
package models
