package dictionary

import (
	"sync"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// Kind names a dictionary family (e.g. "ipadic", "unidic") without baking a
// compile-time feature matrix into the module — spec.md §9 redesign flag 1.
type Kind string

// Loader loads a compiled dictionary directory for a given Kind.
type Loader func(dir string) (*Dictionary, error)

var (
	registryMu sync.RWMutex
	registry   = map[Kind]Loader{}
)

// Register associates a Kind with the function that loads it. Intended to
// be called from an importer's own init() when it wants a Kind available
// by name; the core itself registers nothing implicitly (spec.md §9
// redesign flag 2 — no global embedded-dictionary statics).
func Register(kind Kind, loader Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = loader
}

// Load looks up kind's registered Loader and invokes it on dir.
func Load(kind Kind, dir string) (*Dictionary, error) {
	registryMu.RLock()
	loader, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, kerr.Newf(kerr.DictionaryNotFound, "no loader registered for dictionary kind %q", kind)
	}
	return loader(dir)
}
