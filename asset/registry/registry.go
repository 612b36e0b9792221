// Package registry implements the dependency registry: the durable record
// of every asset's last cook per target profile, plus the reverse
// dependency index used to mark downstream assets dirty when an upstream
// asset's fingerprint changes.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

// Registry holds every asset's Record plus a reverse dependents index,
// guarded by a single mutex shared across both structures so a reader never
// observes one half updated without the other.
type Registry struct {
	mu         sync.Mutex
	records    map[string]asset.Record
	dependents map[string]map[string]struct{}
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		records:    make(map[string]asset.Record),
		dependents: make(map[string]map[string]struct{}),
	}
}

// RegisterAsset creates or replaces the record for a, seeding it from any
// existing record for the same handle so prior fingerprint/ddcKeys history
// survives a re-register.
func (r *Registry) RegisterAsset(a asset.Asset, assetPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.Handle().String()
	record, ok := r.records[key]
	if !ok {
		record = asset.NewRecord(a.Handle(), assetPath, a.Type())
	}
	record.Guid = a.Handle()
	record.AssetPath = assetPath
	record.Type = a.Type()

	r.updateRecordLocked(record)
}

// UpdateRecord replaces the record for record.Guid, rebuilding the reverse
// dependency index for its strong dependencies.
func (r *Registry) UpdateRecord(record asset.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateRecordLocked(record)
}

func (r *Registry) updateRecordLocked(record asset.Record) {
	key := record.Guid.String()
	if old, ok := r.records[key]; ok {
		r.removeDependentsLocked(old)
	}
	r.records[key] = record
	r.addDependentsLocked(record)
}

func (r *Registry) addDependentsLocked(record asset.Record) {
	key := record.Guid.String()
	for _, dep := range record.Deps {
		if dep.Kind != asset.DepStrong {
			continue
		}
		depKey := dep.Asset.Handle.String()
		set, ok := r.dependents[depKey]
		if !ok {
			set = make(map[string]struct{})
			r.dependents[depKey] = set
		}
		set[key] = struct{}{}
	}
}

func (r *Registry) removeDependentsLocked(record asset.Record) {
	key := record.Guid.String()
	for _, dep := range record.Deps {
		if dep.Kind != asset.DepStrong {
			continue
		}
		depKey := dep.Asset.Handle.String()
		set, ok := r.dependents[depKey]
		if !ok {
			continue
		}
		delete(set, key)
		if len(set) == 0 {
			delete(r.dependents, depKey)
		}
	}
}

// FindRecord returns the record for handle, if one has been registered.
func (r *Registry) FindRecord(handle asset.Handle) (asset.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[handle.String()]
	return record, ok
}

// GetDependents returns the handles of every asset whose record lists
// handle as a strong dependency.
func (r *Registry) GetDependents(handle asset.Handle) []asset.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.dependents[handle.String()]
	if !ok {
		return nil
	}
	out := make([]asset.Handle, 0, len(set))
	for key := range set {
		h, err := asset.ParseHandle(key)
		if err != nil {
			continue
		}
		out = append(out, h)
	}
	return out
}

// recordEnvelope mirrors Record's JSON shape but lets LastSourceHash
// deserialize either as the modern map[string]string or as a legacy bare
// string, so old registry files load without a migration tool.
type recordEnvelope struct {
	Guid      asset.Handle       `json:"guid"`
	AssetPath string             `json:"assetPath"`
	Type      asset.Type         `json:"type"`
	Deps      []asset.Dependency `json:"deps,omitempty"`

	LastSourceHash  json.RawMessage     `json:"lastSourceHash,omitempty"`
	LastFingerprint map[string]string   `json:"lastFingerprint"`
	DdcKeys         map[string][]string `json:"ddcKeys"`

	LastImportFailed bool   `json:"lastImportFailed"`
	LastErrorSummary string `json:"lastErrorSummary"`
}

// decodeLastSourceHash resolves the legacy shape: some registry files
// written by an older build stored lastSourceHash as a single bare string
// rather than a map keyed by target profile id. When that happens, the one
// hash is assigned to every target already present in lastFingerprint or
// ddcKeys, or filed under a synthetic "*" key if neither map has entries
// yet, so the legacy value is never silently discarded.
func decodeLastSourceHash(raw json.RawMessage, lastFingerprint map[string]string, ddcKeys map[string][]string) (map[string]string, error) {
	if len(raw) == 0 {
		return map[string]string{}, nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap, nil
	}

	var legacy string
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("decode lastSourceHash: %w", err)
	}

	result := make(map[string]string)
	for target := range lastFingerprint {
		result[target] = legacy
	}
	for target := range ddcKeys {
		result[target] = legacy
	}
	if len(result) == 0 {
		result["*"] = legacy
	}
	return result, nil
}

func (env recordEnvelope) toRecord() (asset.Record, error) {
	lastFingerprint := env.LastFingerprint
	if lastFingerprint == nil {
		lastFingerprint = map[string]string{}
	}
	ddcKeys := env.DdcKeys
	if ddcKeys == nil {
		ddcKeys = map[string][]string{}
	}

	lastSourceHash, err := decodeLastSourceHash(env.LastSourceHash, lastFingerprint, ddcKeys)
	if err != nil {
		return asset.Record{}, err
	}

	return asset.Record{
		Guid:             env.Guid,
		AssetPath:        env.AssetPath,
		Type:             env.Type,
		Deps:             env.Deps,
		LastSourceHash:   lastSourceHash,
		LastFingerprint:  lastFingerprint,
		DdcKeys:          ddcKeys,
		LastImportFailed: env.LastImportFailed,
		LastErrorSummary: env.LastErrorSummary,
	}, nil
}

func fromRecord(record asset.Record) recordEnvelope {
	raw, _ := json.Marshal(record.LastSourceHash)
	return recordEnvelope{
		Guid:             record.Guid,
		AssetPath:        record.AssetPath,
		Type:             record.Type,
		Deps:             record.Deps,
		LastSourceHash:   raw,
		LastFingerprint:  record.LastFingerprint,
		DdcKeys:          record.DdcKeys,
		LastImportFailed: record.LastImportFailed,
		LastErrorSummary: record.LastErrorSummary,
	}
}

// Load replaces the registry's contents with the records stored in path,
// rebuilding the reverse dependency index from scratch.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read registry %q: %w", path, err)
	}

	var envelopes []recordEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return fmt.Errorf("decode registry %q: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[string]asset.Record, len(envelopes))
	r.dependents = make(map[string]map[string]struct{})

	for _, env := range envelopes {
		record, err := env.toRecord()
		if err != nil {
			return fmt.Errorf("decode record %q: %w", env.Guid.String(), err)
		}
		r.records[record.Guid.String()] = record
		r.addDependentsLocked(record)
	}

	return nil
}

// Save writes every record to path as a pretty-printed JSON array, sorted
// by handle so the file diffs cleanly between runs.
func (r *Registry) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.records))
	for k := range r.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	envelopes := make([]recordEnvelope, 0, len(keys))
	for _, k := range keys {
		envelopes = append(envelopes, fromRecord(r.records[k]))
	}

	data, err := json.MarshalIndent(envelopes, "", "    ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write registry %q: %w", path, err)
	}
	return nil
}
