package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"reunion-backend/application/ports"
	"reunion-backend/application/services"
	"reunion-backend/infrastructure/config"
	memstore "reunion-backend/infrastructure/persistence/memory"
	"reunion-backend/infrastructure/supabase"
	"reunion-backend/interfaces/http/rest"
	"reunion-backend/pkg/auth"
)

// localDevSecret signs tokens when no hosted JWT secret is configured.
// Only the in-memory identity provider ever uses it.
const localDevSecret = "reunion-local-dev-secret"

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Backend      *Backend
	Limits       *LimitSource
	Workspaces   *services.WorkspaceService
	Sessions     *services.SessionService
	Submissions  *services.SubmissionService
	Reactions    *services.ReactionService
	Memories     *services.MemoryService
	Invites      *services.InviteService
	JWTValidator *auth.JWTValidator
	Router       *rest.Router
}

// Shutdown releases background resources held by the container.
func (c *Container) Shutdown() {
	if c.Limits != nil {
		c.Limits.Stop()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}

// Backend bundles the persistence and identity adapters so a single
// provider can choose between the hosted and in-memory implementations.
type Backend struct {
	Documents ports.DocumentStore
	Blobs     ports.BlobStore
	Identity  ports.IdentityProvider
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideBackend selects the hosted adapters when Supabase is configured
// and falls back to the in-memory backend otherwise.
func ProvideBackend(cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if cfg.UseSupabase() {
		clients, err := supabase.NewClients(supabase.Config{
			ProjectURL:     cfg.SupabaseURL,
			ServiceRoleKey: cfg.SupabaseServiceRoleKey,
			StorageBucket:  cfg.SupabaseStorageBucket,
		})
		if err != nil {
			return nil, fmt.Errorf("supabase clients: %w", err)
		}

		logger.Info("Using Supabase backend",
			zap.String("url", cfg.SupabaseURL),
			zap.String("bucket", cfg.SupabaseStorageBucket),
		)

		return &Backend{
			Documents: supabase.NewDocumentStore(clients, logger),
			Blobs:     supabase.NewBlobStore(clients, logger),
			Identity:  supabase.NewIdentityProvider(clients, logger),
		}, nil
	}

	if cfg.IsProduction() {
		return nil, fmt.Errorf("production requires a configured Supabase backend")
	}

	logger.Info("Using in-memory backend")

	return &Backend{
		Documents: memstore.NewDocumentStore(),
		Blobs:     memstore.NewBlobStore(),
		Identity:  memstore.NewIdentityProvider(jwtSecret(cfg)),
	}, nil
}

// ProvideDocumentStore extracts the document store from the backend
func ProvideDocumentStore(b *Backend) ports.DocumentStore {
	return b.Documents
}

// ProvideBlobStore extracts the blob store from the backend
func ProvideBlobStore(b *Backend) ports.BlobStore {
	return b.Blobs
}

// ProvideIdentityProvider extracts the identity provider from the backend
func ProvideIdentityProvider(b *Backend) ports.IdentityProvider {
	return b.Identity
}

// LimitSource resolves the current upload limits, preferring the dynamic
// config file when one is being watched.
type LimitSource struct {
	base    services.UploadLimits
	watcher *config.Watcher
}

// Limits returns the limits in effect right now.
func (s *LimitSource) Limits() services.UploadLimits {
	if s.watcher == nil {
		return s.base
	}

	dyn := s.watcher.GetLimits()
	return services.UploadLimits{
		MaxFileBytes:           dyn.MaxUploadBytes,
		CompressThresholdBytes: dyn.CompressThresholdBytes,
		MaxImageWidth:          dyn.MaxImageWidth,
		CallTimeout:            time.Duration(dyn.CallTimeoutSeconds) * time.Second,
	}
}

// Stop halts the underlying file watcher, if any.
func (s *LimitSource) Stop() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
}

// ProvideLimitSource builds the upload limit source, starting a file
// watcher when a dynamic config path is configured.
func ProvideLimitSource(cfg *config.Config, logger *zap.Logger) (*LimitSource, error) {
	source := &LimitSource{
		base: services.UploadLimits{
			MaxFileBytes:           cfg.MaxUploadBytes,
			CompressThresholdBytes: cfg.CompressThresholdBytes,
			MaxImageWidth:          cfg.MaxImageWidth,
			CallTimeout:            cfg.CallTimeout,
		},
	}

	if cfg.DynamicConfigPath == "" {
		return source, nil
	}

	watcher, err := config.NewWatcher(cfg.DynamicConfigPath, logger)
	if err != nil {
		return nil, fmt.Errorf("dynamic config: %w", err)
	}
	watcher.Start()
	source.watcher = watcher

	return source, nil
}

// ProvideUploadOrchestrator creates the attachment upload orchestrator
func ProvideUploadOrchestrator(blobs ports.BlobStore, limits *LimitSource, logger *zap.Logger) *services.UploadOrchestrator {
	return services.NewUploadOrchestrator(blobs, limits.Limits, logger)
}

// ProvideWorkspaceService creates the per-user workspace registry
func ProvideWorkspaceService() *services.WorkspaceService {
	return services.NewWorkspaceService()
}

// ProvideSubmissionService creates the memory submission service
func ProvideSubmissionService(docs ports.DocumentStore, uploader *services.UploadOrchestrator, cfg *config.Config, logger *zap.Logger) *services.SubmissionService {
	return services.NewSubmissionService(docs, uploader, cfg.CallTimeout, logger)
}

// ProvideReactionService creates the reaction toggle service
func ProvideReactionService(docs ports.DocumentStore, cfg *config.Config, logger *zap.Logger) *services.ReactionService {
	return services.NewReactionService(docs, cfg.CallTimeout, logger)
}

// ProvideMemoryService creates the memory browsing service
func ProvideMemoryService(docs ports.DocumentStore, cfg *config.Config, logger *zap.Logger) *services.MemoryService {
	return services.NewMemoryService(docs, cfg.CallTimeout, logger)
}

// ProvideInviteService creates the invite service
func ProvideInviteService(docs ports.DocumentStore, cfg *config.Config, logger *zap.Logger) *services.InviteService {
	return services.NewInviteService(docs, cfg.CallTimeout, logger)
}

// ProvideSessionService creates the session lifecycle service
func ProvideSessionService(identity ports.IdentityProvider, workspaces *services.WorkspaceService, cfg *config.Config, logger *zap.Logger) *services.SessionService {
	return services.NewSessionService(identity, workspaces, cfg.CallTimeout, logger)
}

// ProvideJWTValidator creates the access token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: jwtSecret(cfg),
		Audience:  "authenticated",
	})
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	validator *auth.JWTValidator,
	sessions *services.SessionService,
	submissions *services.SubmissionService,
	reactions *services.ReactionService,
	memories *services.MemoryService,
	invites *services.InviteService,
	workspaces *services.WorkspaceService,
) *rest.Router {
	return rest.NewRouter(cfg, logger, validator, sessions, submissions, reactions, memories, invites, workspaces)
}

func jwtSecret(cfg *config.Config) string {
	if cfg.SupabaseJWTSecret != "" {
		return cfg.SupabaseJWTSecret
	}
	return localDevSecret
}
