// Command revsetdump is a scratch inspector for the revset algebra engine,
// grounded on cmd/hack/hack.go's role as a throwaway harness: it builds a
// small synthetic in-memory DAG, evaluates a revset expression against it,
// and prints or graphs the result. Not meant to run against a real
// repository.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/emicklei/dot"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/ledgerwatch/revgraph/common"
	"github.com/ledgerwatch/revgraph/dag"
	"github.com/ledgerwatch/revgraph/progress"
	"github.com/ledgerwatch/revgraph/revset"
)

func main() {
	app := cli.NewApp()
	app.Name = "revsetdump"
	app.Usage = "evaluate and inspect revset expressions against a synthetic DAG"
	app.Flags = []cli.Flag{seedFlag, exprFlag, limitFlag, outFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func syntheticHash(i int) common.Hash20 {
	var h common.Hash20
	binary.BigEndian.PutUint64(h[12:], uint64(i))
	return h
}

func buildRepo(n int) *revset.Repo {
	backend := dag.NewMemBackend()
	for i := 0; i < n; i++ {
		backend.AddCommit(syntheticHash(i))
	}
	cached, err := dag.NewCachedIdMap(backend, 4096)
	if err != nil {
		panic(err)
	}
	repo := revset.NewRepo(backend, cached)
	repo.Progress = progress.NewTracker("revsetdump", 5*time.Second)
	return repo
}

func run(c *cli.Context) error {
	seed := c.Int(seedFlag.Name)
	expr := c.String(exprFlag.Name)
	if expr == "" {
		return fmt.Errorf("-expr is required")
	}

	repo := buildRepo(seed)
	set, err := parseExpr(expr, repo)
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}

	if out := c.String(outFlag.Name); out != "" {
		return writeDot(set, out)
	}
	return printTable(set, c.Int(limitFlag.Name))
}

func printTable(set revset.RevSet, limit int) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "rev"})

	it := set.Iter()
	row := 0
	for row < limit && it.Next() {
		table.Append([]string{fmt.Sprintf("%d", row), it.Rev().String()})
		row++
	}
	table.Render()
	if row == limit && set.Len() > limit {
		fmt.Printf("(truncated at %d rows; total length %d)\n", limit, set.Len())
	}
	return nil
}

func writeDot(set revset.RevSet, path string) error {
	g := dot.NewGraph(dot.Directed)
	nodes := make(map[revset.RevId]dot.Node)

	it := set.Iter()
	for it.Next() {
		r := it.Rev()
		nodes[r] = g.Node(r.String())
	}
	// Edge each node to the next one in the set's own iteration order, so
	// the resulting graph visualises the set's current ordering rather
	// than DAG parentage (this inspector has no access to real parents).
	var prev revset.RevId
	havePrev := false
	it2 := set.Iter()
	for it2.Next() {
		r := it2.Rev()
		if havePrev {
			g.Edge(nodes[prev], nodes[r])
		}
		prev, havePrev = r, true
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(g.String())
	return err
}
