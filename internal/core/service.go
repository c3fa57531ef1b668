package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/recon/internal/config"
	"github.com/JonMunkholm/recon/internal/logging"
	"github.com/JonMunkholm/recon/internal/sheet"
)

// DefaultRunTimeout bounds decoding and comparison of one run.
const DefaultRunTimeout = 2 * time.Minute

// Upload is one file handed to the service.
type Upload struct {
	Name string
	Data []byte
}

// RunRequest asks for one reconciliation. An empty Profile selects the
// configured default.
type RunRequest struct {
	Profile string
	FileA   Upload
	FileB   Upload
}

// Service runs reconciliations and keeps their results for later retrieval.
// It is shared by the HTTP server and the CLI.
type Service struct {
	defaults    config.ReconcileConfig
	maxFileSize int64
	timeout     time.Duration

	limiter *RunLimiter
	runs    *RunStore
}

// NewService creates a Service from the loaded configuration.
func NewService(cfg *config.Config) *Service {
	timeout := cfg.Run.Timeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}

	return &Service{
		defaults:    cfg.Reconcile,
		maxFileSize: cfg.Upload.MaxFileSize,
		timeout:     timeout,
		limiter:     NewRunLimiter(cfg.Run.MaxConcurrent, cfg.Run.MaxWaitTime),
		runs:        NewRunStore(cfg.Run.TTL),
	}
}

// Settings resolves the settings a run with the given profile would use.
func (s *Service) Settings(profile string) (Settings, error) {
	o := s.defaults
	if profile != "" && profile != o.Profile {
		// Overrides only apply to the profile they were configured for.
		o = config.ReconcileConfig{Profile: profile}
	}
	return ResolveSettings(o)
}

// DefaultProfile returns the profile key used when a request names none.
func (s *Service) DefaultProfile() string {
	return s.defaults.Profile
}

// Run decodes both uploads, reconciles them and stores the result.
func (s *Service) Run(ctx context.Context, req RunRequest) (*Run, error) {
	profile := req.Profile
	if profile == "" {
		profile = s.defaults.Profile
	}
	log := logging.WithFields(ctx, "profile", profile)
	settings, err := s.Settings(profile)
	if err != nil {
		return nil, err
	}

	if err := s.checkUpload(settings.SourceA.Label, req.FileA); err != nil {
		return nil, err
	}
	if err := s.checkUpload(settings.SourceB.Label, req.FileB); err != nil {
		return nil, err
	}

	release, err := s.limiter.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	var gridA, gridB sheet.Grid
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		grid, err := decode(gctx, settings.SourceA.Label, req.FileA)
		gridA = grid
		return err
	})
	g.Go(func() error {
		grid, err := decode(gctx, settings.SourceB.Label, req.FileB)
		gridB = grid
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := runCtx.Err(); err != nil {
		return nil, err
	}

	log.Debug("files decoded",
		"file_a", req.FileA.Name,
		"rows_a", len(gridA),
		"file_b", req.FileB.Name,
		"rows_b", len(gridB),
	)

	res, err := Reconcile(gridA, gridB, settings, WithLogger(log))
	if err != nil {
		return nil, err
	}

	run := &Run{
		Profile:   profile,
		Settings:  settings,
		FileNameA: req.FileA.Name,
		FileNameB: req.FileB.Name,
		Result:    res,
		CreatedAt: time.Now(),
		Duration:  time.Since(start),
		ClientIP:  ClientIPFromContext(ctx),
		UserAgent: UserAgentFromContext(ctx),
	}
	s.runs.Put(run)

	log.Info("reconciliation complete",
		"run_id", run.ID,
		"no_position", res.Summary.NoPosition,
		"a_only", res.Summary.AOnly,
		"b_only", res.Summary.BOnly,
		"divergent", res.Summary.Divergent,
		"duration", run.Duration,
	)

	return run, nil
}

func (s *Service) checkUpload(label string, u Upload) error {
	if u.Data == nil {
		return fmt.Errorf("%s file: %w", label, ErrNoFile)
	}
	if s.maxFileSize > 0 && int64(len(u.Data)) > s.maxFileSize {
		return fmt.Errorf("%s file: file too large: %d bytes exceeds limit of %d", label, len(u.Data), s.maxFileSize)
	}
	return nil
}

// decode parses one upload, giving up early if the run was cancelled.
func decode(ctx context.Context, label string, u Upload) (sheet.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grid, err := sheet.Decode(u.Data)
	if err != nil {
		return nil, fmt.Errorf("%s file %q: %w", label, u.Name, err)
	}
	return grid, ctx.Err()
}

// GetRun returns a stored run, or ErrRunNotFound.
func (s *Service) GetRun(id string) (*Run, error) {
	return s.runs.Get(id)
}

// Profiles lists the registered profiles.
func (s *Service) Profiles() []Profile {
	return Profiles()
}

// LimiterStatus reports current run concurrency.
func (s *Service) LimiterStatus() RunLimiterStatus {
	return s.limiter.Status()
}

// WaitForRuns blocks until in-flight runs finish or ctx is done.
func (s *Service) WaitForRuns(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
