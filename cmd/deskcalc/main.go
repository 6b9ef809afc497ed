package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"fortio.org/log"
	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
)

const usage = `usage: deskcalc [-hknv] [-c config] [-e expr] [-f file] [-p digits] [file|expr|-]...

With no arguments, or with -, deskcalc reads statements interactively.
Each other argument is run as a file if one exists by that name and is
evaluated as statements otherwise.

  -c config  read settings from config instead of the default location
  -e expr    evaluate expr
  -f file    run the statements in file
  -k         keep going after errors in files and expressions
  -n         disable colored output
  -p digits  print results with this many significant digits
  -v         log verbosely
  -h         show this help
`

// input is one source of statements from the command line.
type input struct {
	name string
	expr bool
}

func main() {
	log.SetDefaultsForClientTools()
	opts, optind, err := getopt.Getopts(os.Args, "c:e:f:hknp:v")
	if err != nil {
		log.Fatalf("%v\n%s", err, usage)
	}
	var (
		cfgpath       string
		ins           []input
		keep, nocolor bool
		verbose       bool
		prec          = -1
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cfgpath = opt.Value
		case 'e':
			ins = append(ins, input{name: opt.Value, expr: true})
		case 'f':
			ins = append(ins, input{name: opt.Value})
		case 'h':
			fmt.Print(usage)
			return
		case 'k':
			keep = true
		case 'n':
			nocolor = true
		case 'p':
			prec, err = strconv.Atoi(opt.Value)
			if err != nil || prec < 0 {
				log.Fatalf("precision %q must be a non-negative integer", opt.Value)
			}
		case 'v':
			verbose = true
		}
	}

	cfg, err := loadConfig(cfgpath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := log.SetLogLevelStr(cfg.LogLevel); err != nil {
		log.Warnf("config: %v", err)
	}
	if verbose {
		log.SetLogLevel(log.Verbose)
	}
	if prec >= 0 {
		cfg.Precision = prec
	}
	cfg.KeepGoing = cfg.KeepGoing || keep
	if nocolor || !cfg.Color {
		color.NoColor = true
	}

	interactive := len(ins) == 0 && len(os.Args) == optind
	for _, arg := range os.Args[optind:] {
		switch {
		case arg == "-":
			interactive = true
		case isFile(arg):
			ins = append(ins, input{name: arg})
		default:
			ins = append(ins, input{name: arg, expr: true})
		}
	}

	c := newCalc(&cfg, os.Stdout)
	failed := false
	for _, in := range ins {
		if err := c.runInput(in); err != nil {
			if !cfg.KeepGoing {
				os.Exit(1)
			}
			failed = true
		}
	}
	if interactive {
		if err := c.repl(); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// isFile returns whether name is an existing regular file.
func isFile(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.LogVf("stat %s: %v", name, err)
		}
		return false
	}
	return fi.Mode().IsRegular()
}

// runInput runs one command-line input in batch mode.
func (c *calc) runInput(in input) error {
	if in.expr {
		return c.batch(strings.NewReader(in.name))
	}
	f, err := os.Open(in.name)
	if err != nil {
		c.report(err)
		return err
	}
	defer f.Close()
	return c.batch(bufio.NewReader(f))
}

// batch executes every statement from src, printing each result. The first
// error stops execution unless the calculator is set to keep going.
func (c *calc) batch(src io.RuneScanner) error {
	c.p.Reset(src)
	var first error
	for {
		err := c.p.Next()
		if errors.Is(err, io.EOF) {
			return first
		}
		if err != nil {
			c.report(err)
			if !c.cfg.KeepGoing {
				return err
			}
			if first == nil {
				first = err
			}
			continue
		}
		c.result()
	}
}
