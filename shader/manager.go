package shader

import (
	"fmt"
	"os"

	"testpge/misc"

	eb "github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// MaxCachedShaders bounds how many compiled shaders a Manager keeps.
// The least recently used one is deallocated first.
const MaxCachedShaders = 8

// Manager handles shader compilation and caching.
// Custom sources are cached under their file path.
type Manager struct {
	shaders *lru.Cache[string, *eb.Shader]
}

// NewManager creates a new shader manager
func NewManager() *Manager {
	// only fails for a size <= 0
	shaders, _ := lru.NewWithEvict(MaxCachedShaders, func(key string, s *eb.Shader) {
		s.Deallocate()
	})
	return &Manager{
		shaders: shaders,
	}
}

// Load compiles and caches a registered shader by ID.
// IDNone yields a nil shader.
func (m *Manager) Load(id string) (*eb.Shader, error) {
	if s, ok := m.shaders.Get(id); ok {
		return s, nil
	}

	src, err := Source(id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	return m.Compile(id, src)
}

// Compile compiles src and stores it under key,
// replacing whatever was compiled under key before.
func (m *Manager) Compile(key string, src []byte) (*eb.Shader, error) {
	if err := CheckBalanced(src); err != nil {
		return nil, fmt.Errorf("failed to compile shader %s: %w", key, err)
	}

	shader, err := eb.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %s: %w", key, err)
	}

	// Add replaces without calling the evict func
	if old, ok := m.shaders.Peek(key); ok {
		old.Deallocate()
	}
	m.shaders.Add(key, shader)

	return shader, nil
}

// LoadFile reads a Kage file from disk and compiles it.
// Calling it again with the same path recompiles, which is how hot reloading works.
func (m *Manager) LoadFile(path string) (*eb.Shader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	shader, err := m.Compile(path, src)
	if err != nil {
		return nil, err
	}

	misc.InfoLogger.Printf("loaded shader %s", path)
	return shader, nil
}

// IsLoaded returns true if the shader is compiled and ready
func (m *Manager) IsLoaded(key string) bool {
	return m.shaders.Contains(key)
}

// Dispose deallocates every compiled shader.
func (m *Manager) Dispose() {
	// Purge calls the evict func for every entry
	m.shaders.Purge()
}
