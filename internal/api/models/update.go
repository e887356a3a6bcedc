package models

import "time"

// UpdateCheckData describes the latest release.
type UpdateCheckData struct {
	Repository      string    `json:"repository" example:"smazurov/torchnode" doc:"GitHub repository releases come from"`
	CurrentVersion  string    `json:"current_version" example:"v0.3.0" doc:"Running version"`
	LatestVersion   string    `json:"latest_version" example:"0.4.0" doc:"Latest released version"`
	ReleaseNotes    string    `json:"release_notes,omitempty" doc:"Release notes of the latest version"`
	ReleaseURL      string    `json:"release_url,omitempty" doc:"Release page"`
	PublishedAt     time.Time `json:"published_at" doc:"Release date"`
	UpdateAvailable bool      `json:"update_available" example:"true" doc:"Whether the latest release is newer"`
}

type UpdateCheckResponse struct {
	Body UpdateCheckData
}
