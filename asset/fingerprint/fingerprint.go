// Package fingerprint implements the content-addressing primitives the rest
// of the asset pipeline builds on: hashing file contents, hashing canonical
// JSON, hashing the strong-dependency set of an asset, and composing those
// pieces into a single Derived Data Cache key.
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Carmen-Shannon/oxy-assets/asset"
)

const readBufferSize = 64 * 1024

func hashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashBytes returns the hex-encoded SHA-1 digest of data, the same
// content-hash form every DDC entry's Value.ContentHash uses.
func HashBytes(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// HashFileContents streams path through SHA-1. A missing or unreadable file
// hashes to the same sentinel digest every time ("missing"), rather than
// erroring, so a deleted source still produces a stable, cacheable key.
func HashFileContents(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return hashString("missing")
	}
	defer file.Close()

	h := sha1.New()
	buf := make([]byte, readBufferSize)
	if _, err := io.CopyBuffer(h, file, buf); err != nil {
		return hashString("missing")
	}

	return hex.EncodeToString(h.Sum(nil))
}

// HashJSON hashes v's canonical, sorted-key JSON rendering. Two values that
// are semantically equal but were built with keys inserted in different
// orders hash identically.
func HashJSON(v any) (string, error) {
	canonical, err := canonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("canonicalize json: %w", err)
	}
	return hashString(canonical), nil
}

// canonicalJSON marshals v, then recursively re-emits every JSON object
// with its keys sorted, so the resulting string is stable regardless of
// struct field order or map iteration order.
func canonicalJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}

	var buf []byte
	buf, err = appendCanonical(buf, generic)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func appendCanonical(buf []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf = append(buf, '{')
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf = append(buf, kb...)
			buf = append(buf, ':')
			buf, err = appendCanonical(buf, val[k])
			if err != nil {
				return nil, err
			}
		}
		buf = append(buf, '}')
		return buf, nil

	case []any:
		buf = append(buf, '[')
		for i, elem := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			buf, err = appendCanonical(buf, elem)
			if err != nil {
				return nil, err
			}
		}
		buf = append(buf, ']')
		return buf, nil

	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil
	}
}

// HashDependencies hashes the strong-dependency subset of deps, sorted by
// (guid, subId), so dependency order never affects the resulting key. Weak
// dependencies are informational only and never participate in the hash.
func HashDependencies(deps []asset.Dependency) string {
	strong := make([]asset.Dependency, 0, len(deps))
	for _, d := range deps {
		if d.Kind == asset.DepStrong {
			strong = append(strong, d)
		}
	}

	sort.Slice(strong, func(i, j int) bool {
		gi, gj := strong[i].Asset.Handle.String(), strong[j].Asset.Handle.String()
		if gi != gj {
			return gi < gj
		}
		return strong[i].Asset.SubID < strong[j].Asset.SubID
	})

	combined := ""
	for _, d := range strong {
		combined += d.Asset.Handle.String() + ":" + fmt.Sprint(d.Asset.SubID) + "|"
	}

	return hashString(combined)
}

// Input is the full set of ingredients that go into a DDC key.
type Input struct {
	TypePrefix      string
	Guid            string
	ImporterID      string
	ImporterVersion int
	ToolchainHash   string
	SourceHash      string
	SettingsHash    string
	DepsHash        string
	Target          asset.TargetProfile
}

// BuildDdcKey composes a fully-qualified DDC key from its fingerprint
// inputs. The format is stable and is itself part of the on-disk contract:
//
//	<typePrefix>|<guid>|imp=<id>@v<ver>|tgt=<targetId>|S=<settingsHash>|C=<sourceHash>|D=<depsHash>|T=<toolchainHash>
func BuildDdcKey(in Input) string {
	return fmt.Sprintf(
		"%s|%s|imp=%s@v%d|tgt=%s|S=%s|C=%s|D=%s|T=%s",
		in.TypePrefix,
		in.Guid,
		in.ImporterID,
		in.ImporterVersion,
		in.Target.ID(),
		in.SettingsHash,
		in.SourceHash,
		in.DepsHash,
		in.ToolchainHash,
	)
}
