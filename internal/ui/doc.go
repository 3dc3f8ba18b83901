package ui

// Package ui implements the Fyne presentation surface: the fetch form, the
// selectable candidate list, dispatch controls, and the active-download
// rows. Rows are reconciled against the orchestrator's active view by ID,
// updating widgets in place so progress never flickers or re-animates.
