// Package ui implements the interactive track list using bubbletea's Elm architecture.
//
// The list is driven by [Selection], a small state machine with three modes:
//  1. [Browsing] : arrows move the cursor, enter picks the entry under it
//  2. [Picked] : arrows move the picked entry through the list, enter drops it
//  3. [Terminated] : 'c' (combine) or 'q' (quit) ended the session
//
// [Model] adapts bubbletea key messages onto [Selection] and renders the list with
// charmbracelet/bubbles. Keyboard input reaches the state machine only as [Key] values,
// so the whole reorder flow can be tested without a terminal.
//
// Track metadata (ID3 tags, duration) is probed in the background on Init and merged in
// when the [MsgMetadataLoaded] message arrives.
package ui
