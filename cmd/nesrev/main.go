package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/retrogolib/log"
	"gopkg.in/urfave/cli.v2"

	"github.com/master-g/nesrev/pkg/analysis"
	"github.com/master-g/nesrev/pkg/emit"
	"github.com/master-g/nesrev/pkg/ines"
	"github.com/master-g/nesrev/pkg/workspace"
)

func main() {
	app := &cli.App{
		Name:    "nesrev",
		Usage:   "Disassemble and decompile NES cartridge images",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "iNES rom file to analyze",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output directory",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:    "disassemble",
				Aliases: []string{"d"},
				Usage:   "write an assembly listing",
			},
			&cli.BoolFlag{
				Name:    "decompile",
				Aliases: []string{"c"},
				Usage:   "write a C translation with header",
				Value:   true,
			},
			&cli.BoolFlag{
				Name:    "workspace",
				Aliases: []string{"w"},
				Usage:   "write a workspace document for the editor",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging and a report dump",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	app.Run(os.Args)
}

func run(c *cli.Context) error {
	input := c.String("input")
	if input == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("no input file", 1)
	}

	cfg := log.DefaultConfig()
	if c.Bool("verbose") {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	rom, err := ines.LoadFile(input)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Debug("rom loaded",
		log.String("file", input),
		log.String("mapper", ines.MapperName(rom.MapperID())))

	analyzer := &analysis.Analyzer{Logger: logger}
	report := analyzer.Analyze(rom)

	if c.Bool("verbose") {
		fmt.Println(rom.Header.String())
		fmt.Printf("%d instructions, %d variables, %d functions\n",
			len(report.Disasm.Instructions), len(report.Variables), len(report.Functions))
		spew.Dump(report.SortedVariables())
	}

	outDir := c.String("output")
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	stem := filepath.Join(outDir, rom.Name)

	if c.Bool("disassemble") {
		if err := writeListing(stem+".asm", report, listingAsm); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		logger.Info("assembly written", log.String("file", stem+".asm"))
	}

	if c.Bool("decompile") {
		if err := writeListing(stem+".c", report, listingC); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := writeListing(stem+".h", report, listingH); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		logger.Info("C translation written",
			log.String("source", stem+".c"),
			log.String("header", stem+".h"))
	}

	if c.Bool("workspace") {
		doc := workspace.FromReport(report, input)
		if err := doc.Save(stem + ".json"); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		logger.Info("workspace written", log.String("file", stem+".json"))
	}

	return nil
}

type listingKind int

const (
	listingAsm listingKind = iota
	listingC
	listingH
)

func writeListing(path string, report *analysis.Report, kind listingKind) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sink := &emit.Writer{W: f}
	switch kind {
	case listingAsm:
		emit.Asm(report.Disasm, report.ROM, sink)
	case listingC:
		emit.C(report, sink)
	case listingH:
		emit.CHeader(report, sink)
	}
	return sink.Err()
}
