// Package assets loads textures and shader programs from layered file systems.
package assets

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/engine/texture"
	"github.com/Faultbox/shaderbasics/internal/logger"
)

// ErrNotFound is returned when no source contains the requested file.
var ErrNotFound = errors.New("asset not found")

// Backend turns decoded assets into GPU handles.
type Backend interface {
	UploadTexture(img *image.RGBA, mipmaps bool) (gfx.Texture, error)
	NewProgram(vertexSrc, fragmentSrc string) (gfx.Program, error)
	DeleteTexture(t gfx.Texture)
}

// ProgramDescriptor names the stage sources of a shader program. Stage paths are
// relative to the descriptor.
type ProgramDescriptor struct {
	Name     string `yaml:"name"`
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// Manager loads assets from its sources and keeps one handle per path.
type Manager struct {
	backend Backend
	sources []fs.FS
	cache   *Cache
	log     *zap.Logger

	mu       sync.Mutex
	textures map[string]gfx.Texture
	programs map[string]gfx.Program
}

// NewManager creates an asset manager with no sources.
func NewManager(backend Backend) *Manager {
	return &Manager{
		backend:  backend,
		cache:    NewCache(),
		log:      logger.Named("assets"),
		textures: make(map[string]gfx.Texture),
		programs: make(map[string]gfx.Program),
	}
}

// AddSource adds a file system to search.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddSource(fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, fsys)
	m.mu.Unlock()
}

// Load reads a file from the sources.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(name)
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.Lock()
	sources := m.sources
	m.mu.Unlock()

	for i := len(sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(sources[i], name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// LoadTexture decodes and uploads an image file. Repeated calls return the same handle.
func (m *Manager) LoadTexture(name string) (gfx.Texture, error) {
	name = path.Clean(name)
	m.mu.Lock()
	t, ok := m.textures[name]
	m.mu.Unlock()
	if ok {
		return t, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return gfx.Texture{}, err
	}
	img, err := texture.Decode(name, data)
	if err != nil {
		return gfx.Texture{}, err
	}
	t, err = m.backend.UploadTexture(img, true)
	if err != nil {
		return gfx.Texture{}, fmt.Errorf("uploading %s: %w", name, err)
	}

	m.mu.Lock()
	m.textures[name] = t
	m.mu.Unlock()
	m.log.Debug("texture loaded",
		zap.String("path", name),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return t, nil
}

// LoadProgram reads a YAML program descriptor, then compiles and links its stages.
// Repeated calls return the same program.
func (m *Manager) LoadProgram(name string) (gfx.Program, error) {
	name = path.Clean(name)
	m.mu.Lock()
	p, ok := m.programs[name]
	m.mu.Unlock()
	if ok {
		return p, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	var desc ProgramDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing program %s: %w", name, err)
	}
	if desc.Vertex == "" || desc.Fragment == "" {
		return nil, fmt.Errorf("program %s: vertex and fragment stages are required", name)
	}

	dir := path.Dir(name)
	vert, err := m.Load(path.Join(dir, desc.Vertex))
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}
	frag, err := m.Load(path.Join(dir, desc.Fragment))
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}

	p, err = m.backend.NewProgram(string(vert), string(frag))
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}

	m.mu.Lock()
	m.programs[name] = p
	m.mu.Unlock()
	m.log.Info("program loaded", zap.String("path", name), zap.String("name", desc.Name))
	return p, nil
}

// Close deletes every loaded texture and program and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.textures {
		m.backend.DeleteTexture(t)
	}
	for _, p := range m.programs {
		p.Delete()
	}
	hits, misses := m.cache.Stats()
	m.log.Debug("closing", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

	m.textures = make(map[string]gfx.Texture)
	m.programs = make(map[string]gfx.Program)
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded file contents.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
