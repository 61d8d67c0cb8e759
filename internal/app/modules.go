package app

import (
	"io"

	"github.com/specialistvlad/lazyflow/internal/registry"
	"github.com/specialistvlad/lazyflow/modules/environment"
	"github.com/specialistvlad/lazyflow/modules/print"
	"github.com/specialistvlad/lazyflow/modules/scalars"
	"github.com/specialistvlad/lazyflow/modules/signal"
)

// coreLibraries is the definitive list of node libraries compiled into the
// lazyflow binary. Printing nodes write to outW.
func coreLibraries(outW io.Writer, workers int) []registry.Library {
	return []registry.Library{
		scalars.Library{},
		signal.Library{Workers: workers},
		environment.Library{},
		print.Library{Out: outW},
	}
}
