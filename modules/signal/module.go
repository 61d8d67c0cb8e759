// Package signal provides nodes that produce, reshape and reduce lazy
// detector signals. Nodes only compose lazy operations; frames are computed
// when a consumer requests them.
package signal

import (
	"github.com/specialistvlad/lazyflow/internal/content"
	"github.com/specialistvlad/lazyflow/internal/node"
	"github.com/specialistvlad/lazyflow/internal/registry"
)

const category = "signal"

// Library implements registry.Library for this package.
type Library struct {
	// Workers bounds the goroutines of reduction nodes. Zero means GOMAXPROCS.
	Workers int
}

var _ registry.Library = Library{}

// Nodes returns every node of the library.
func (l Library) Nodes(string) []node.CalculationNode {
	return []node.CalculationNode{
		synthetic(),
		cut(),
		merge(),
		cache(),
		length(),
		splitFullData(),
		combineFullData(),
		linearFunction(),
		applyFunction(),
		channelMean(l.Workers),
	}
}

func info(identifier, name string) node.Info {
	return node.Info{NodeName: name, NodeIdentifier: identifier, NodeCategory: category}
}

var (
	signalPort = node.Port{Name: "signal", Type: content.TypeDetectorSignal}
	timePort   = node.Port{Name: "time", Type: content.TypeDetectorTime}
	fullPort   = node.Port{Name: "full", Type: content.TypeDetectorFullData}
)
