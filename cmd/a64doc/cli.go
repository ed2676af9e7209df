package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/a64doc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Loader  a64doc.Loader
	Records a64doc.RecordService
	Catalog a64doc.CatalogWriter

	// Sets used when a command is given no --set flags. Empty means all.
	Sets []a64doc.SetID
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir     string `help:"Directory holding the XML documentation" env:"A64DOC_DIR"`
	DB      string `name:"db" help:"Path of the SQLite catalog database" env:"A64DOC_DB"`
	Config  string `help:"YAML file supplying defaults for dir, db and sets" type:"existingfile"`
	Verbose bool   `short:"v" help:"Log loader and storage activity to stderr"`

	List  ListCmd  `cmd:"" help:"List instruction hierarchy nodes"`
	JS    JSCmd    `cmd:"" name:"js" help:"Write the catalog script for the search page"`
	Index IndexCmd `cmd:"" help:"Build the catalog and store it in the database"`
	Find  FindCmd  `cmd:"" help:"Look up a mnemonic in the stored catalog"`
	Dump  DumpCmd  `cmd:"" help:"Dump the node tree of one section document"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Set   []string `short:"s" help:"Instruction set to list (base, simdfp, sve, sme; repeatable)"`
	Level string   `short:"l" default:"encoding" enum:"set,section,class,encoding" help:"Level of the hierarchy to print"`
}

// JSCmd is the "js" subcommand.
type JSCmd struct {
	Set []string `short:"s" help:"Instruction set to include (repeatable)"`
	Out string   `short:"o" help:"Output file (default: stdout)"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Set []string `short:"s" help:"Instruction set to index (repeatable)"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	Mnemonic string `arg:"" help:"Instruction mnemonic"`
	Set      string `short:"s" help:"Restrict results to one instruction set"`
	Limit    int    `short:"n" default:"0" help:"Maximum number of results (0 = all)"`
}

// DumpCmd is the "dump" subcommand.
type DumpCmd struct {
	File  string `arg:"" help:"Section document, relative to --dir"`
	Level string `short:"l" default:"encoding" enum:"section,class,encoding" help:"Deepest level to load"`
}

// parseSets converts set flags to ids, falling back to defaults when none
// were given.
func parseSets(flags []string, defaults []a64doc.SetID) ([]a64doc.SetID, error) {
	if len(flags) == 0 {
		return defaults, nil
	}
	ids := make([]a64doc.SetID, 0, len(flags))
	for _, s := range flags {
		id, err := a64doc.ParseSetID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
