// Package fixtures loads the read-only demo data shown by applytrack:
// applications, network contacts, timeline events and an analytics snapshot.
//
// The data ships embedded in the binary. A directory may override any of the
// four files; files it lacks fall back to the embedded copy. Files are JSON
// with comments and trailing commas allowed.
package fixtures

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/jsonc"

	"github.com/applytrack/applytrack/internal/log"
)

//go:embed data/*.json
var embedded embed.FS

// File names read from a fixtures source.
const (
	ApplicationsFile = "applications.json"
	ContactsFile     = "contacts.json"
	TimelineFile     = "timeline.json"
	AnalyticsFile    = "analytics.json"
)

const embeddedSource = "embedded"

// DefaultTTL bounds how long a loaded dataset is reused before rereading.
const DefaultTTL = 10 * time.Minute

// Loader reads and caches datasets keyed by source directory.
type Loader struct {
	cache    *gocache.Cache
	embedded fs.FS
}

// NewLoader creates a loader whose cached datasets expire after ttl.
// A ttl of zero or less keeps entries until invalidated.
func NewLoader(ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("fixtures: embedded data missing: %v", err))
	}
	return &Loader{
		cache:    gocache.New(ttl, 2*ttl),
		embedded: sub,
	}
}

var defaultLoader = NewLoader(DefaultTTL)

// Load returns the dataset for dir using the package loader. An empty dir
// selects the embedded data.
func Load(dir string) (*Dataset, error) {
	return defaultLoader.Load(dir)
}

// Invalidate drops the package loader's cached dataset for dir.
func Invalidate(dir string) {
	defaultLoader.Invalidate(dir)
}

// Load returns the dataset for dir, reading it on a cache miss.
func (l *Loader) Load(dir string) (*Dataset, error) {
	key := cacheKey(dir)
	if v, ok := l.cache.Get(key); ok {
		return v.(*Dataset), nil
	}

	ds, err := l.read(dir)
	if err != nil {
		return nil, err
	}
	l.cache.Set(key, ds, gocache.DefaultExpiration)

	log.Debug(log.CatFixtures, "loaded fixtures",
		"source", ds.Source(),
		"applications", len(ds.data.Applications),
		"contacts", len(ds.data.Contacts),
		"events", len(ds.data.Timeline))
	return ds, nil
}

// Invalidate drops the cached dataset for dir.
func (l *Loader) Invalidate(dir string) {
	l.cache.Delete(cacheKey(dir))
}

func cacheKey(dir string) string {
	if dir == "" {
		return embeddedSource
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}

func (l *Loader) read(dir string) (*Dataset, error) {
	source := embeddedSource
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("fixtures dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("fixtures dir %s: not a directory", dir)
		}
		source = dir
	}

	var s Snapshot
	files := []struct {
		name string
		into any
	}{
		{ApplicationsFile, &s.Applications},
		{ContactsFile, &s.Contacts},
		{TimelineFile, &s.Timeline},
		{AnalyticsFile, &s.Analytics},
	}
	for _, f := range files {
		data, err := l.readFile(dir, f.name)
		if err != nil {
			return nil, err
		}
		if err := decode(data, f.into); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	ds, err := newDataset(source, s)
	if err != nil {
		return nil, fmt.Errorf("loading %s fixtures: %w", source, err)
	}
	return ds, nil
}

// readFile prefers dir/name and falls back to the embedded copy.
func (l *Loader) readFile(dir, name string) ([]byte, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // fixture dir is user supplied on purpose
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	data, err := fs.ReadFile(l.embedded, name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", name, err)
	}
	return data, nil
}

// decode strips comments and trailing commas, then unmarshals strictly.
func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	return nil
}
