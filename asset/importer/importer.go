// Package importer defines the pluggable cook contract every asset type
// implements, and the registry importers are looked up through by type.
package importer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-assets/asset"
	"github.com/Carmen-Shannon/oxy-assets/asset/ddc"
)

// DepRecorder accumulates the dependencies an import discovers as it runs.
// An importer is expected to clear its recorded set at the start of every
// Import call and re-declare every dependency it touches; the manager
// trusts the recorded set completely when it rebuilds the registry's
// reverse dependency index.
type DepRecorder struct {
	Deps []asset.Dependency
}

// AddStrong records a strong dependency: a change to target invalidates
// whatever this import produces.
func (d *DepRecorder) AddStrong(target asset.Ref) {
	d.Deps = append(d.Deps, asset.Dependency{Kind: asset.DepStrong, Asset: target})
}

// AddWeak records a weak dependency: informational only, never hashed into
// the DDC key and never used to mark dependents dirty.
func (d *DepRecorder) AddWeak(target asset.Ref) {
	d.Deps = append(d.Deps, asset.Dependency{Kind: asset.DepWeak, Asset: target})
}

// Reset clears the recorder for a fresh import run.
func (d *DepRecorder) Reset() {
	d.Deps = d.Deps[:0]
}

// ImportContext is everything an importer needs to cook one asset.
type ImportContext struct {
	Asset         asset.Asset
	AssetPath     string
	SourcePath    string
	Target        asset.TargetProfile
	DDC           ddc.Store
	Deps          *DepRecorder
	ForceReimport bool
}

// ImportResult is what an importer hands back after a cook attempt. A
// non-empty Errors slice means the cook failed; ProducedKeys and Warnings
// are still meaningful even on partial failure.
type ImportResult struct {
	ProducedKeys []string
	Warnings     []string
	Errors       []string
}

// Failed reports whether the result carries any error.
func (r ImportResult) Failed() bool {
	return len(r.Errors) > 0
}

// Importer cooks one asset type into one or more DDC entries.
type Importer interface {
	// ID identifies the importer's algorithm; it is part of every DDC key
	// this importer produces.
	ID() string

	// Version is bumped whenever ID's cooking algorithm changes in a way
	// that should invalidate every previously produced key.
	Version() int

	// Supports reports whether this importer can cook assets of type t.
	Supports(t asset.Type) bool

	// Import cooks ctx.Asset, writing its output to ctx.DDC and returning
	// the keys it produced.
	Import(ctx ImportContext) ImportResult
}

// Registry looks up the importer registered for a given asset type by a
// linear scan, mirroring the small, fixed importer count a pipeline like
// this actually has.
type Registry struct {
	importers []Importer
}

// NewRegistry creates an empty importer registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds imp to the registry.
func (r *Registry) Register(imp Importer) {
	r.importers = append(r.importers, imp)
}

// FindImporter returns the first registered importer that supports t.
func (r *Registry) FindImporter(t asset.Type) (Importer, bool) {
	for _, imp := range r.importers {
		if imp.Supports(t) {
			return imp, true
		}
	}
	return nil, false
}

// ErrNoImporter is returned (wrapped) by callers that require an importer
// for a type with none registered.
func ErrNoImporter(t asset.Type) error {
	return fmt.Errorf("no importer registered for asset type %s", t)
}
