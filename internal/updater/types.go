package updater

import (
	"context"
	"time"

	"github.com/creativeprojects/go-selfupdate"
)

// DefaultRepository is the GitHub slug releases are fetched from.
const DefaultRepository = "smazurov/torchnode"

// Options contains configuration for the updater.
type Options struct {
	Repository string // GitHub repo slug, DefaultRepository when empty
	Prerelease bool   // Whether to include prereleases
}

// Info describes the latest release relative to the running binary.
type Info struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	ReleaseNotes    string    `json:"release_notes,omitempty"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	AssetSize       int       `json:"asset_size,omitempty"`
	UpdateAvailable bool      `json:"update_available"`
}

// releaseSource is the part of *selfupdate.Updater used here.
type releaseSource interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
	UpdateTo(ctx context.Context, rel *selfupdate.Release, cmdPath string) error
}
