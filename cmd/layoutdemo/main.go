// Command layoutdemo builds one of the spec's named graph scenarios, lays
// it out, and prints the rendered diagram alongside its score — a
// standalone driver in the same spirit as the teacher's cmd/preprocess:
// flag-selected input, log.Printf progress, plain stdout output, no server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"asciigraph/pkg/compact"
	"asciigraph/pkg/diagramgraph"
	"asciigraph/pkg/layout"
	"asciigraph/pkg/metric"
	"asciigraph/pkg/render"
)

func main() {
	scenario := flag.String("scenario", "chain", "scenario to lay out: chain|diamond|parallel|bridges|cycle|selfloop")
	boxart := flag.Bool("boxart", false, "render with box-drawing characters instead of ASCII")
	flow := flag.String("flow", "east", "layout flow: east|west|north|south")
	deadlineMs := flag.Uint("deadline-ms", 0, "layout deadline in milliseconds, 0 = unlimited")
	flag.Parse()

	build, ok := scenarios[*scenario]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q; choose one of: chain, diamond, parallel, bridges, cycle, selfloop\n", *scenario)
		os.Exit(1)
	}

	log.Printf("building scenario %q", *scenario)
	g := build(metric.ParseFlow(*flow))

	cfg := layout.DefaultConfig()
	cfg.Flow = metric.ParseFlow(*flow)
	cfg.Boxart = *boxart
	cfg.DeadlineMs = *deadlineMs

	log.Printf("running layout (flow=%s, boxart=%v, deadline_ms=%d)", cfg.Flow, cfg.Boxart, cfg.DeadlineMs)
	res, err := layout.Run(context.Background(), g, cfg)
	if err != nil {
		log.Printf("layout error: %v", err)
		if res == nil {
			os.Exit(1)
		}
	}

	tbl := compact.PositionTables(res.Grid)
	out := render.Render(g, res.Grid, tbl, *boxart)
	fmt.Print(out)
	fmt.Printf("\nscore: %d\n", res.Score)
	if res.Incomplete {
		fmt.Println("(incomplete: layout hit its backtrack/deadline budget)")
	}
}

var scenarios = map[string]func(metric.Flow) *diagramgraph.Graph{
	"chain":    buildChain,
	"diamond":  buildDiamond,
	"parallel": buildParallel,
	"bridges":  buildBridges,
	"cycle":    buildCycle,
	"selfloop": buildSelfLoop,
}

// buildChain is E1: [A] -> [B] -> [C].
func buildChain(flow metric.Flow) *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(flow)
	a := b.AddNode("A")
	n := b.AddNode("B")
	c := b.AddNode("C")
	b.AddEdge(a, n, true)
	b.AddEdge(n, c, true)
	return b.Build()
}

// buildDiamond is E2: [A]->[B]; [A]->[C]; [B]->[D]; [C]->[D].
func buildDiamond(flow metric.Flow) *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(flow)
	a := b.AddNode("A")
	n1 := b.AddNode("B")
	n2 := b.AddNode("C")
	d := b.AddNode("D")
	b.AddEdge(a, n1, true)
	b.AddEdge(a, n2, true)
	b.AddEdge(n1, d, true)
	b.AddEdge(n2, d, true)
	return b.Build()
}

// buildParallel is E3: three distinct [A]->[B] edges.
func buildParallel(flow metric.Flow) *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(flow)
	a := b.AddNode("A")
	n := b.AddNode("B")
	b.AddEdge(a, n, true)
	b.AddEdge(a, n, true)
	b.AddEdge(a, n, true)
	return b.Build()
}

// buildBridges is E4: the Seven Bridges of Königsberg, undirected, as a
// multigraph over {North, South, Kneiphof, Lomse}.
func buildBridges(flow metric.Flow) *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(flow)
	north := b.AddNode("North")
	south := b.AddNode("South")
	kneiphof := b.AddNode("Kneiphof")
	lomse := b.AddNode("Lomse")
	b.AddEdge(north, kneiphof, false)
	b.AddEdge(north, kneiphof, false)
	b.AddEdge(south, kneiphof, false)
	b.AddEdge(south, kneiphof, false)
	b.AddEdge(north, lomse, false)
	b.AddEdge(lomse, south, false)
	b.AddEdge(lomse, kneiphof, false)
	return b.Build()
}

// buildCycle is E5: [A]->[B]->[C]->[A].
func buildCycle(flow metric.Flow) *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(flow)
	a := b.AddNode("A")
	n := b.AddNode("B")
	c := b.AddNode("C")
	b.AddEdge(a, n, true)
	b.AddEdge(n, c, true)
	b.AddEdge(c, a, true)
	return b.Build()
}

// buildSelfLoop is E6: [A]->[A].
func buildSelfLoop(flow metric.Flow) *diagramgraph.Graph {
	b := diagramgraph.NewBuilder(flow)
	a := b.AddNode("A")
	b.AddEdge(a, a, true)
	return b.Build()
}
