package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/zephyrtronium/deskcalc"
)

const help = `Statements:
  1 + 2i              evaluate an expression
  x = 3               assign a variable
  xs = [1, 2, 3]      assign a list
  fn f(a, b) = a*b    define a function (or just f(a, b) = a*b)
  sum([k=1, 10 k^2])  call a function on a range
  del x f             delete names
Commands:
  help         show this message
  clear, cls   clear the screen
  vars         list variables and constants
  funcs        list functions
  lists        list lists
  reset        remove everything you have defined
  run <file>   run the statements in a file
  exit, quit   leave
The last result is stored in _ and ans.
`

// calc is a calculator session.
type calc struct {
	cfg    *config
	t      *deskcalc.SymbolTable
	p      *deskcalc.Parser
	format deskcalc.Formatter
	out    io.Writer
	errc   *color.Color
}

func newCalc(cfg *config, out io.Writer) *calc {
	var opts []deskcalc.TableOption
	if cfg.PhysicalConstants {
		opts = append(opts, deskcalc.WithPhysicalConstants())
	}
	t := deskcalc.NewSymbolTable(opts...)
	f := deskcalc.Formatter{Prec: cfg.Precision, Group: cfg.GroupDigits}
	c := &calc{
		cfg:    cfg,
		t:      t,
		format: f,
		out:    out,
		errc:   color.New(color.FgRed),
	}
	c.p = deskcalc.NewParser(t, deskcalc.ListOutput(c), deskcalc.ListFormat(f))
	return c
}

// Write writes to the session's current output, which changes when the REPL
// switches the terminal to raw mode.
func (c *calc) Write(b []byte) (int, error) {
	return c.out.Write(b)
}

// result prints the result of the last statement, if any, and stores it as _
// and ans.
func (c *calc) result() {
	if !c.p.HasResult() {
		return
	}
	v := c.p.Result()
	for _, name := range []string{"_", "ans"} {
		if err := c.t.SetVar(name, v); err != nil {
			log.LogVf("not storing result: %v", err)
		}
	}
	fmt.Fprintln(c.out, c.format.Complex(v))
}

func (c *calc) report(err error) {
	c.errc.Fprintln(c.out, "error:", err)
}

// line executes every statement in a line of interactive input. Errors are
// reported and execution continues with the next statement.
func (c *calc) line(text string) {
	c.p.Reset(strings.NewReader(text))
	for {
		err := c.p.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			c.report(err)
			continue
		}
		c.result()
	}
}

// command runs a REPL command. The result is false if text is not a command.
// quit is true if the REPL should exit.
func (c *calc) command(text string) (ok, quit bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false, false
	}
	// Command names are case-insensitive. File names for run are not.
	cmd := strings.ToLower(fields[0])
	if len(fields) > 1 && cmd != "run" {
		// Statements like "vars = 1" use command names as variables.
		return false, false
	}
	switch cmd {
	case "help":
		fmt.Fprint(c.out, help)
	case "clear", "cls":
		fmt.Fprint(c.out, "\033[H\033[2J")
	case "vars":
		for _, name := range c.t.Vars() {
			v, _ := c.t.Value(name)
			kind := ""
			if c.t.IsConst(name) {
				kind = " (constant)"
			}
			fmt.Fprintf(c.out, "%s = %s%s\n", name, c.format.Complex(v), kind)
		}
	case "funcs":
		for _, name := range c.t.Funcs() {
			f, _ := c.t.Func(name)
			fmt.Fprintln(c.out, f)
		}
		fmt.Fprintln(c.out, "built-in:", strings.Join(c.t.Builtins(), " "))
	case "lists":
		for _, name := range c.t.Lists() {
			l, _ := c.t.List(name)
			fmt.Fprintf(c.out, "%s = %s\n", name, c.format.List(l))
		}
	case "reset":
		c.t.Reset()
	case "run":
		if len(fields) != 2 {
			c.report(errors.New("usage: run <file>"))
			break
		}
		// Files run from the REPL keep going so that one bad line doesn't
		// hide the rest.
		keep := c.cfg.KeepGoing
		c.cfg.KeepGoing = true
		c.runInput(input{name: fields[1]})
		c.cfg.KeepGoing = keep
	case "exit", "quit":
		return true, true
	default:
		return false, false
	}
	return true, false
}

// repl reads statements interactively until the input ends or the user quits.
func (c *calc) repl() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return c.basic(os.Stdin)
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		log.Warnf("failed to set raw mode: %v", err)
		return c.basic(os.Stdin)
	}
	defer term.Restore(fd, old)
	tt := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, c.cfg.Prompt)
	prev := c.out
	c.out = tt
	defer func() { c.out = prev }()
	fmt.Fprintln(c.out, c.cfg.intro())
	for {
		text, err := tt.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ok, quit := c.command(text); quit {
			return nil
		} else if ok {
			continue
		}
		c.line(text)
	}
}

// basic is the REPL for input that is not a terminal.
func (c *calc) basic(in io.Reader) error {
	fmt.Fprintln(c.out, c.cfg.intro())
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, c.cfg.Prompt)
		if !sc.Scan() {
			fmt.Fprintln(c.out)
			return sc.Err()
		}
		text := sc.Text()
		if ok, quit := c.command(text); quit {
			return nil
		} else if ok {
			continue
		}
		c.line(text)
	}
}
