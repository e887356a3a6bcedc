package updater

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/smazurov/torchnode/internal/version"
)

// Service checks GitHub releases and replaces the running binary.
type Service struct {
	repository     selfupdate.Repository
	repositorySlug string
	source         releaseSource
	executable     func() (string, error)
	logger         *slog.Logger

	mu          sync.Mutex
	lastChecked time.Time
}

// NewService creates an updater backed by GitHub releases.
func NewService(opts Options, logger *slog.Logger) (*Service, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:     source,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return newService(opts, updater, logger), nil
}

func newService(opts Options, source releaseSource, logger *slog.Logger) *Service {
	slug := opts.Repository
	if slug == "" {
		slug = DefaultRepository
	}
	return &Service{
		repository:     selfupdate.ParseSlug(slug),
		repositorySlug: slug,
		source:         source,
		executable:     selfupdate.ExecutablePath,
		logger:         logger,
	}
}

// Repository returns the GitHub slug releases come from.
func (s *Service) Repository() string {
	return s.repositorySlug
}

// LastChecked returns when releases were last queried successfully.
func (s *Service) LastChecked() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChecked
}

// Check queries the latest release without downloading it.
func (s *Service) Check(ctx context.Context) (*Info, error) {
	info, _, err := s.detect(ctx)
	return info, err
}

// Apply downloads the latest release and replaces the executable. The
// caller is responsible for restarting the process.
func (s *Service) Apply(ctx context.Context) (*Info, error) {
	exe, err := s.executable()
	if err != nil {
		return nil, newError(ErrCodeApplyFailed, "failed to get executable path", err)
	}
	if err := checkWritePermission(exe); err != nil {
		return nil, newError(ErrCodeDisabled, err.Error(), nil)
	}

	info, release, err := s.detect(ctx)
	if err != nil {
		return nil, err
	}
	if !info.UpdateAvailable {
		return info, newError(ErrCodeNoUpdate, "already running the latest version", nil)
	}

	s.logger.Info("Applying update", "from", info.CurrentVersion, "to", info.LatestVersion, "path", exe)
	if err := s.source.UpdateTo(ctx, release, exe); err != nil {
		return nil, newError(ErrCodeApplyFailed, "failed to apply update", err)
	}
	s.logger.Info("Update applied", "version", info.LatestVersion)
	return info, nil
}

func (s *Service) detect(ctx context.Context) (*Info, *selfupdate.Release, error) {
	release, found, err := s.source.DetectLatest(ctx, s.repository)
	if err != nil {
		return nil, nil, newError(ErrCodeCheckFailed, "failed to check for updates", err)
	}
	if !found {
		return nil, nil, newError(ErrCodeNotFound,
			fmt.Sprintf("repository %s not found or has no releases", s.repositorySlug), nil)
	}

	s.mu.Lock()
	s.lastChecked = time.Now()
	s.mu.Unlock()

	// dev is always considered outdated
	current := version.Version
	isNewer := version.IsDev() || release.GreaterThan(version.Semver())

	s.logger.Debug("Checked for updates", "current", current, "latest", release.Version(), "newer", isNewer)

	return &Info{
		CurrentVersion:  current,
		LatestVersion:   release.Version(),
		ReleaseNotes:    release.ReleaseNotes,
		ReleaseURL:      release.URL,
		PublishedAt:     release.PublishedAt,
		AssetSize:       release.AssetByteSize,
		UpdateAvailable: isNewer,
	}, release, nil
}

// checkWritePermission verifies the directory of exe is writable, which
// replacing the binary requires.
func checkWritePermission(exe string) error {
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	dir := filepath.Dir(resolved)
	tmp := filepath.Join(dir, ".torchnode.update.test")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("no write permission to %s: %w", dir, err)
	}
	f.Close()
	return os.Remove(tmp)
}
