package supabase

import (
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// Config locates a Supabase project. The service role key is used because
// this service runs server-side and validates callers itself.
type Config struct {
	ProjectURL     string
	ServiceRoleKey string
	StorageBucket  string
}

// Configured reports whether a project is configured at all. When false the
// in-memory backend is wired instead; there is never a nil client floating
// around.
func (c Config) Configured() bool {
	return c.ProjectURL != "" && c.ServiceRoleKey != ""
}

// Clients bundles the SDK clients the adapters are built on: the official
// client for auth and storage plus a postgrest client for the document
// tables (the wrapped one does not surface RPC errors).
type Clients struct {
	API    *supabase.Client
	Rest   *postgrest.Client
	Bucket string
}

// NewClients connects to the configured project.
func NewClients(cfg Config) (*Clients, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("supabase project not configured")
	}

	api, err := supabase.NewClient(cfg.ProjectURL, cfg.ServiceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	rest := postgrest.NewClient(cfg.ProjectURL+"/rest/v1", "public", map[string]string{
		"apikey":        cfg.ServiceRoleKey,
		"Authorization": "Bearer " + cfg.ServiceRoleKey,
	})

	bucket := cfg.StorageBucket
	if bucket == "" {
		bucket = "attachments"
	}

	return &Clients{API: api, Rest: rest, Bucket: bucket}, nil
}
