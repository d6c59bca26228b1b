package main

import "github.com/urfave/cli"

// flags mirror hack.go's flat, package-level var style but declared as
// urfave/cli.Flag values instead of stdlib flag.*, since this inspector is
// structured as a cli.App with a single top-level Action.
var (
	seedFlag = cli.IntFlag{
		Name:  "seed",
		Value: 64,
		Usage: "number of synthetic commits to generate for the in-memory DAG",
	}
	exprFlag = cli.StringFlag{
		Name:  "expr",
		Usage: "revset expression to evaluate, e.g. \"(1,2,3 | 9,10) & ~5,6\"",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Value: 20,
		Usage: "maximum number of rows to print",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write a DOT graph of the evaluated set to this file instead of printing a table",
	}
)
