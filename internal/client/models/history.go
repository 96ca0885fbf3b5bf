// Package models defines the payloads exchanged with the studynotes server.
package models

import "time"

// History is one processed upload as listed on the dashboard.
type History struct {
	ID        string    `json:"id"`
	Branch    string    `json:"branch"`
	Subject   string    `json:"subject"`
	Filename  string    `json:"filename"`
	Summary   string    `json:"summary"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResult is the server's answer to a successful upload.
type UploadResult struct {
	Branch    string   `json:"branch"`
	Subject   string   `json:"subject"`
	Summary   string   `json:"summary"`
	Questions []string `json:"questions"`
}
