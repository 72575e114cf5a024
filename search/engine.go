package search

import (
	"go.uber.org/zap"
)

// Engine runs the lexical searches over a knowledge-base snapshot. It holds
// no index state of its own; every search is a pure read over the immutable
// collections passed to it.
type Engine struct {
	clusters *Clusters
	logger   *zap.Logger
}

func NewEngine(clusters *Clusters, logger *zap.Logger) *Engine {
	if clusters == nil {
		clusters = DefaultClusters()
	}
	return &Engine{clusters: clusters, logger: logger}
}
