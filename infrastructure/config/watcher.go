package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches the dynamic limits file for changes and reloads it
// without a restart. Upload limits are the only runtime-tunable knobs.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *DynamicConfig
	mu       sync.RWMutex
	logger   *zap.Logger
	stopCh   chan struct{}
}

// DynamicConfig represents runtime-changeable configuration
type DynamicConfig struct {
	Limits   DynamicLimits `json:"limits"`
	Metadata Metadata      `json:"metadata"`
}

// DynamicLimits holds the upload limits that may change at runtime
type DynamicLimits struct {
	MaxUploadBytes         int64 `json:"maxUploadBytes"`
	CompressThresholdBytes int64 `json:"compressThresholdBytes"`
	MaxImageWidth          int   `json:"maxImageWidth"`
	CallTimeoutSeconds     int   `json:"callTimeoutSeconds"`
}

// Metadata holds metadata about the configuration
type Metadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewWatcher creates a watcher over the dynamic config file
func NewWatcher(configPath string, logger *zap.Logger) (*Watcher, error) {
	// Load initial configuration
	current, err := loadDynamicConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}

	// Also watch the directory for atomic saves (rename operations)
	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		logger.Warn("Failed to watch config directory", zap.Error(err))
	}

	return &Watcher{
		path:     configPath,
		watcher:  watcher,
		current:  current,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching for configuration changes
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("Configuration watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("Configuration watcher stopped")
}

func (w *Watcher) watchLoop() {
	// Debounce to avoid multiple reloads on editor save patterns
	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.handleChange()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleChange() {
	w.logger.Info("Configuration file changed, reloading", zap.String("path", w.path))

	newConfig, err := loadDynamicConfig(w.path)
	if err != nil {
		w.logger.Error("Failed to reload configuration", zap.Error(err))
		return
	}

	if err := validateDynamicConfig(newConfig); err != nil {
		w.logger.Error("Invalid configuration, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	oldConfig := w.current
	w.current = newConfig
	w.mu.Unlock()

	w.logChanges(oldConfig, newConfig)

	w.logger.Info("Configuration reloaded successfully",
		zap.String("version", newConfig.Metadata.Version),
	)
}

func validateDynamicConfig(config *DynamicConfig) error {
	if config.Limits.MaxUploadBytes <= 0 {
		return fmt.Errorf("maxUploadBytes must be positive")
	}
	if config.Limits.CompressThresholdBytes < 0 {
		return fmt.Errorf("compressThresholdBytes cannot be negative")
	}
	if config.Limits.MaxImageWidth <= 0 {
		return fmt.Errorf("maxImageWidth must be positive")
	}
	if config.Limits.CallTimeoutSeconds <= 0 {
		return fmt.Errorf("callTimeoutSeconds must be positive")
	}
	return nil
}

func (w *Watcher) logChanges(oldConfig, newConfig *DynamicConfig) {
	changes := []string{}

	if oldConfig.Limits.MaxUploadBytes != newConfig.Limits.MaxUploadBytes {
		changes = append(changes, fmt.Sprintf("MaxUploadBytes: %d -> %d",
			oldConfig.Limits.MaxUploadBytes, newConfig.Limits.MaxUploadBytes))
	}
	if oldConfig.Limits.CompressThresholdBytes != newConfig.Limits.CompressThresholdBytes {
		changes = append(changes, fmt.Sprintf("CompressThresholdBytes: %d -> %d",
			oldConfig.Limits.CompressThresholdBytes, newConfig.Limits.CompressThresholdBytes))
	}
	if oldConfig.Limits.MaxImageWidth != newConfig.Limits.MaxImageWidth {
		changes = append(changes, fmt.Sprintf("MaxImageWidth: %d -> %d",
			oldConfig.Limits.MaxImageWidth, newConfig.Limits.MaxImageWidth))
	}
	if oldConfig.Limits.CallTimeoutSeconds != newConfig.Limits.CallTimeoutSeconds {
		changes = append(changes, fmt.Sprintf("CallTimeoutSeconds: %d -> %d",
			oldConfig.Limits.CallTimeoutSeconds, newConfig.Limits.CallTimeoutSeconds))
	}

	if len(changes) > 0 {
		w.logger.Info("Configuration changes detected",
			zap.Strings("changes", changes),
		)
	}
}

// GetLimits returns the current limits
func (w *Watcher) GetLimits() DynamicLimits {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current.Limits
}

func loadDynamicConfig(path string) (*DynamicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config DynamicConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if config.Metadata.Version == "" {
		config.Metadata.Version = "1.0.0"
	}
	config.Metadata.UpdatedAt = time.Now()

	return &config, nil
}
