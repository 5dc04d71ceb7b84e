// Package profiles loads platform profiles from a versioned TOML or YAML file.
package profiles

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/fsutil"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	profilesPathKey    = "profiles.path"
	profilesFileMode   = 0o600
	profilesDirMode    = 0o700
	profilesConfigDir  = ".aiprobe"
	profilesConfigFile = "profiles.toml"
)

//go:embed defaults.toml
var defaultProfiles []byte

// ErrExists is returned by Init when the profiles file is already present.
var ErrExists = errors.New("profiles file already exists")

type Repository struct {
	profilesPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*Repository)(nil)

// NewRepository resolves the profiles file from profiles.path. When the file does not
// exist the built-in profiles are served instead.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if !cfg.IsSet(profilesPathKey) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetDefault(profilesPathKey, filepath.Join(homeDir, profilesConfigDir, profilesConfigFile))
	}

	profilesPath := cfg.GetString(profilesPathKey)
	if profilesPath == "" {
		return nil, errors.New("profiles path is empty")
	}
	profilesPath, err := normalizeProfilesPath(profilesPath)
	if err != nil {
		return nil, err
	}

	return &Repository{profilesPath: profilesPath, mu: lockForPath(profilesPath)}, nil
}

func (r *Repository) Path() string {
	return r.profilesPath
}

func (r *Repository) GetByID(ctx context.Context, id domain.PlatformID) (domain.PlatformProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlatformProfile{}, err
	}

	profiles, err := r.load()
	if err != nil {
		return domain.PlatformProfile{}, err
	}

	for _, profile := range profiles {
		if profile.ID == id {
			return profile, nil
		}
	}

	return domain.PlatformProfile{}, fmt.Errorf("%w: %s", domain.ErrPlatformNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.PlatformProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.load()
}

// Init writes the built-in profiles to the profiles path. It refuses to replace an
// existing file unless force is set.
func (r *Repository) Init(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(r.profilesPath)) {
	case ".yaml", ".yml":
		return fmt.Errorf("init profiles %s: built-in profiles are TOML", r.profilesPath)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !force {
		if _, err := os.Stat(r.profilesPath); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, r.profilesPath)
		}
	}

	if err := fsutil.WriteFileAtomic(r.profilesPath, defaultProfiles, profilesDirMode, profilesFileMode); err != nil {
		return fmt.Errorf("write profiles file: %w", err)
	}

	return nil
}

func (r *Repository) load() ([]domain.PlatformProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.PlatformProfile, 0, len(file.Platforms))
	seen := make(map[domain.PlatformID]struct{}, len(file.Platforms))
	for _, entry := range file.Platforms {
		profile, err := fromSchema(entry, file.Defaults)
		if err != nil {
			return nil, fmt.Errorf("load profiles %s: %w", r.profilesPath, err)
		}
		if _, dup := seen[profile.ID]; dup {
			return nil, fmt.Errorf("load profiles %s: duplicate platform id %q", r.profilesPath, profile.ID)
		}
		seen[profile.ID] = struct{}{}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.profilesPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
		}
		return decode(defaultProfiles, profilesConfigFile)
	}

	return decode(data, r.profilesPath)
}

func decode(data []byte, path string) (fileSchema, error) {
	var file fileSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &file); err != nil {
			return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
		}
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeProfilesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve profiles path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
