// Package render turns spoof reports into output for people and tools:
// a sectioned text report (optionally styled with lipgloss), indented
// JSON, and the interactive "Press Enter to continue..." pause.
package render
