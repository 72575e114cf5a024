package search

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed clusters.yaml
var defaultClustersYAML []byte

// VariableClusters are the synonym clusters for variable-dictionary search.
// A cluster member found anywhere in the raw query pulls the whole cluster
// into the expansion set.
type VariableClusters struct {
	Borrower    []string `yaml:"borrower"`
	Institution []string `yaml:"institution"`
	Location    []string `yaml:"location"`
}

// LookupClusters are the keyword clusters for lookup-table search, matched
// token-for-token against the tokenized query.
type LookupClusters struct {
	Location   []string `yaml:"location"`
	Category   []string `yaml:"category"`
	Collection []string `yaml:"collection"`
	ItemStatus []string `yaml:"itemstatus"`
}

// Clusters holds both cluster sets. They are configuration data, not code:
// the matching algorithms never hard-code a term.
type Clusters struct {
	Variable VariableClusters `yaml:"variable"`
	Lookup   LookupClusters   `yaml:"lookup"`
}

// DefaultClusters returns the embedded cluster configuration.
func DefaultClusters() *Clusters {
	clusters, err := parseClusters(defaultClustersYAML)
	if err != nil {
		// The embedded file is part of the build; failing to parse it is a
		// programming error.
		panic(fmt.Sprintf("embedded clusters.yaml is invalid: %v", err))
	}
	return clusters
}

// LoadClusters reads a cluster configuration override from disk.
func LoadClusters(path string) (*Clusters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clusters file: %w", err)
	}
	return parseClusters(data)
}

func parseClusters(data []byte) (*Clusters, error) {
	var clusters Clusters
	if err := yaml.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("decode clusters: %w", err)
	}
	return &clusters, nil
}
