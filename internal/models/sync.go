package models

import "time"

// SyncResult summarizes one sync pass. Per-record failures are collected here
// instead of aborting the batch; the caller decides what to do with them.
type SyncResult struct {
	Processed  int       `json:"processed"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Errors     []string  `json:"errors,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func (r *SyncResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// ReportResult describes a generated report artifact.
type ReportResult struct {
	FileName    string    `json:"file_name"`
	URL         string    `json:"url"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}
