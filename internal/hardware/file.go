package hardware

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// File is the on-disk layout of a catalog file (YAML or JSON).
//
//	tiers:
//	  - key: p3.2xlarge
//	    timePerStepMinutes: 0.02
//	    costPerHourUsd: 3.06
//	    gpuMemoryGb: 16
type File struct {
	// Replace drops the built-in tiers instead of merging over them.
	Replace bool   `json:"replace,omitempty"`
	Tiers   []Tier `json:"tiers"`
}

// Parse decodes a catalog document and applies it to the built-in catalog.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding hardware catalog")
	}
	if f.Replace {
		c, err := New(f.Tiers...)
		if err != nil {
			return nil, errors.Wrap(err, "building hardware catalog")
		}
		return c, nil
	}
	c, err := Default().Merge(f.Tiers...)
	if err != nil {
		return nil, errors.Wrap(err, "merging hardware catalog")
	}
	return c, nil
}

// LoadFile reads a catalog file. An empty path yields the built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading hardware catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return c, nil
}
