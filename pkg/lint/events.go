package lint

import (
	"github.com/moonpack-dev/moonpack/pkg/graph"
	"github.com/moonpack-dev/moonpack/pkg/lexscan"
	"github.com/moonpack-dev/moonpack/pkg/localize"
)

// moonloaderEvents are the callback names MoonLoader invokes on the global
// environment of the entry script.
var moonloaderEvents = map[string]bool{
	"main":                true,
	"onExitScript":        true,
	"onQuitGame":          true,
	"onScriptLoad":        true,
	"onScriptTerminate":   true,
	"onSystemInitialized": true,
	"onScriptMessage":     true,
	"onSystemMessage":     true,
	"onReceivePacket":     true,
	"onReceiveRpc":        true,
	"onSendPacket":        true,
	"onSendRpc":           true,
	"onWindowMessage":     true,
	"onStartNewGame":      true,
	"onLoadGame":          true,
	"onSaveGame":          true,
}

// IsMoonloaderEvent reports whether name is a host callback name.
func IsMoonloaderEvent(name string) bool {
	return moonloaderEvents[name]
}

// checkEventsInModules flags host event handlers declared in non-entry
// modules. After bundling, module bodies run inside thunks, so a global
// `function main()` there either never fires or stomps the entry's handler.
func checkEventsInModules(g *graph.Graph, result *Result) {
	for _, id := range g.Order {
		if id == g.Entry {
			continue
		}
		node := g.Modules[id]

		for _, decl := range localize.Declarations(node.Source, node.Spans) {
			if !moonloaderEvents[decl.Name] {
				continue
			}
			line, _ := lexscan.LineColumn(node.Source, decl.Offset)
			result.EventsInModules = append(result.EventsInModules, EventInModule{
				EventName: decl.Name,
				FilePath:  node.AbsolutePath,
				Line:      line,
			})
		}
	}
}
