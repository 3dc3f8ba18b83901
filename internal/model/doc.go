package model

// Package model defines domain data structures shared across the app:
// download jobs, job status enums, candidate batches produced by metadata
// retrieval, and the event variants emitted by the download engine.
