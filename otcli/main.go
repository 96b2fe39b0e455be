/*
Command otcli is an interactive shell for trying out vertical metrics on a font.

	otcli [-t Debug|Info|Error] font.ttf

Commands may be chained on one line, separated by blanks, e.g.

	ascent:92 descent:20 preview

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vmetrics"
	"github.com/npillmayer/vmetrics/internal/report"
	"github.com/npillmayer/vmetrics/metrics"
	"github.com/npillmayer/vmetrics/pipeline"
	"github.com/pterm/pterm"
	"github.com/tdewolff/argp"
)

// tracer traces with key 'vmetrics'
func tracer() tracing.Trace {
	return tracing.Select(vmetrics.TraceKey)
}

// Shell holds the command line options.
type Shell struct {
	Trace string `short:"t" default:"Error" desc:"Trace level [Debug|Info|Error]"`
	Font  string `index:"0" desc:"Font to load"`
}

func main() {
	report.InitDisplay()
	root := argp.NewCmd(&Shell{}, "Interactive shell for the vertical metrics of a font")
	root.Parse()
	root.PrintHelp()
}

// Run is called by argp after parsing the command line.
func (sh *Shell) Run() error {
	if sh.Font == "" {
		return argp.ShowUsage
	}
	if err := report.SetupTracing(false); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	switch sh.Trace {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		pterm.Error.Println(fmt.Sprintf("invalid trace level: %s", sh.Trace))
		os.Exit(5)
	}
	pterm.Info.Println("Welcome to the vertical metrics shell")
	//
	repl, err := readline.New("vm > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := NewIntp(report.NewConsole(sh.Trace == "Debug"))
	intp.repl = repl
	if err := intp.loadFont(sh.Font); err != nil {
		intp.console.Fatal(err)
		os.Exit(4)
	}
	pterm.Info.Println("Quit with <ctrl>D or 'quit'")
	intp.REPL()
	return nil
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	console *report.Console
	result  pipeline.Result // result of loading the font
	path    string          // path of the font
	percent metrics.Percent // metrics to apply
	written []string        // files written during this session
}

// NewIntp creates an interpreter with the default metrics.
func NewIntp(console *report.Console) *Intp {
	return &Intp{console: console, percent: metrics.DefaultPercent()}
}

func (intp *Intp) String() string {
	if intp == nil || intp.path == "" {
		return "()"
	}
	return fmt.Sprintf("( %s | ascent=%g%% descent=%g%% line-gap=%g )", intp.result.Name,
		intp.percent.Ascent, intp.percent.Descent, intp.percent.LineGap)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// loadFont loads a font and lists its metrics. Nothing is written.
func (intp *Intp) loadFont(path string) error {
	opts := pipeline.DefaultOptions(path)
	opts.ListOnly = true
	result, err := pipeline.Run(opts, intp.console)
	if err != nil {
		return err
	}
	intp.path, intp.result = path, result
	tracer().Infof("loaded font %s", result.Name)
	return nil
}

// --- Commands ---------------------------------------------------------

type Op struct {
	code int
	arg  string
}

type Command struct {
	count int
	op    []Op
}

const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LIST
	TABLES
	ASCENT
	DESCENT
	LINEGAP
	PREVIEW
	WRITE
	CSS
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"list":    LIST,
	"tables":  TABLES,
	"ascent":  ASCENT,
	"descent": DESCENT,
	"linegap": LINEGAP,
	"preview": PREVIEW,
	"write":   WRITE,
	"css":     CSS,
}

var opNames = []string{
	"quit",
	"help",
	"list",
	"tables",
	"ascent",
	"descent",
	"linegap",
	"preview",
	"write",
	"css",
}

// parseCommand splits a line into operations. Operations are separated by
// blanks; an argument follows the operation name after a colon, e.g.
// "ascent:92" or "write:/tmp/out.ttf". Unknown operations turn into 'help'.
func parseCommand(line string) (*Command, error) {
	steps := strings.Fields(line)
	command := &Command{op: make([]Op, 0, len(steps))}
	for _, step := range steps {
		c := strings.SplitN(step, ":", 2)
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			tracer().Infof("unknown command %q", c[0])
			code = HELP
		}
		op := Op{code: code}
		if code != QUIT {
			op.arg = getOptArg(c, 1)
		}
		command.op = append(command.op, op)
		command.count++
		if code == QUIT {
			break
		}
		if op.arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: '%s'", opNames[code], op.arg)
		}
	}
	if command.count == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	LIST:    listOp,
	TABLES:  tablesOp,
	ASCENT:  ascentOp,
	DESCENT: descentOp,
	LINEGAP: lineGapOp,
	PREVIEW: previewOp,
	WRITE:   writeOp,
	CSS:     cssOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op)
	for _, c := range cmd.op {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Println(fmt.Sprintf("unknown command code: %d", c.code))
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
