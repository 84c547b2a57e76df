package graph

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/google/uuid"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to JSON bytes. Nodes and links are sorted by ID
// for deterministic output, and summary metadata is recomputed before
// encoding so exported metadata is always consistent with the content.
func Marshal(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a graph as indented JSON to w.
// Use [Marshal] for in-memory serialization or [WriteFile] for files.
func Write(d Data, w io.Writer) error {
	out := normalize(d)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file with 0644 permissions.
func WriteFile(d Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Unmarshal deserializes JSON bytes into a validated graph.
// See [Read] for the validation rules.
func Unmarshal(data []byte) (Data, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a JSON graph from r and validates it:
//
//   - node IDs must be unique (duplicate IDs are an error)
//   - links whose endpoints don't exist are dropped
//   - links without an ID receive a generated one
//
// Summary metadata is recomputed from the decoded content.
func Read(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return Data{}, fmt.Errorf("node with empty ID")
		}
		if seen[n.ID] {
			return Data{}, fmt.Errorf("duplicate node ID %q", n.ID)
		}
		seen[n.ID] = true
	}

	kept := d.Links[:0]
	linkIDs := make(map[string]bool, len(d.Links))
	for _, l := range d.Links {
		if !seen[l.Source] || !seen[l.Target] {
			continue
		}
		if l.ID == "" {
			l.ID = "link-" + uuid.NewString()
		}
		if linkIDs[l.ID] {
			return Data{}, fmt.Errorf("duplicate link ID %q", l.ID)
		}
		linkIDs[l.ID] = true
		kept = append(kept, l)
	}
	d.Links = kept

	d.Finalize()
	return d, nil
}

// ReadFile reads a JSON file and returns the decoded, validated graph.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// =============================================================================
// Content Hash
// =============================================================================

// Hash returns the SHA-256 hex digest of the canonical (sorted) encoding of
// the graph. Two graphs with the same nodes and links hash identically
// regardless of slice order, which makes the hash usable as a cache key.
func Hash(d Data) string {
	data, err := Marshal(d)
	if err != nil {
		// Marshal only fails on unencodable values, which the model excludes.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Internal Helpers
// =============================================================================

// normalize returns a copy with nodes and links sorted by ID and metadata
// recomputed.
func normalize(d Data) Data {
	out := d.Clone()
	slices.SortFunc(out.Nodes, func(a, b Node) int {
		return compareID(a.ID, b.ID)
	})
	slices.SortFunc(out.Links, func(a, b Link) int {
		return compareID(a.ID, b.ID)
	})
	out.Finalize()
	return out
}

func compareID(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
