// Command gonginx parses, validates, and re-renders nginx configuration
// files from the shell.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/nginxconf/gonginx/dumper"
	"github.com/nginxconf/gonginx/parser"
	"github.com/nginxconf/gonginx/token"
	"github.com/nginxconf/gonginx/utils"
)

const usage = `usage: gonginx <command> [flags] <file>

commands:
  parse    parse a config file (and its includes) and print the Payload as JSON
  build    read a Payload as JSON on stdin and re-render it as nginx configuration text
  lex      print the raw token stream for a single file
  format   parse a single config file and print it back out, pretty-printed
  minify   parse a config file, combine includes, and print the smallest valid text
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 3
	}

	switch args[0] {
	case "parse":
		return runParse(args[1:])
	case "build":
		return runBuild(args[1:])
	case "format":
		return runFormat(args[1:])
	case "lex":
		return runLex(args[1:])
	case "minify":
		return runMinify(args[1:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stderr, usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "gonginx: unknown command %q\n\n%s", args[0], usage)
		return 3
	}
}

func runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	strict := fs.Bool("strict", false, "fail on unknown directives")
	combine := fs.Bool("combine", false, "flatten includes into a single file entry")
	includeComments := fs.Bool("include-comments", false, "keep comments as \"#\" directives")
	pretty := fs.Bool("pretty", true, "pretty-print the JSON output")
	noCatch := fs.Bool("no-catch", false, "abort on the first error instead of tolerating it")
	ignore := fs.String("ignore", "", "comma-separated directive names to drop without validation")
	singleFile := fs.Bool("single-file", false, "disable include expansion, keeping include args verbatim")
	noCheckCtx := fs.Bool("no-check-ctx", false, "skip context-legality checking")
	noCheckArgs := fs.Bool("no-check-args", false, "skip argument arity checking")
	tbOnError := fs.String("tb-onerror", "", "if set, print this label and a debug stack trace to stderr when a parse error is recorded")
	if err := fs.Parse(args); err != nil {
		return 3
	}
	file, code := requireOneArg(fs)
	if code != 0 {
		return code
	}

	opts := []parser.Option{
		parser.WithStrict(*strict),
		parser.WithCombine(*combine),
		parser.WithComments(*includeComments),
		parser.WithCatchErrors(!*noCatch),
		parser.WithSingleFile(*singleFile),
		parser.WithCheckContext(!*noCheckCtx),
		parser.WithCheckArgs(!*noCheckArgs),
	}
	if *ignore != "" {
		opts = append(opts, parser.WithIgnore(strings.Split(*ignore, ",")...))
	}

	p := parser.New(opts...)
	payload, err := p.Parse(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}

	if payload.Status != "ok" && *tbOnError != "" {
		fmt.Fprintf(os.Stderr, "%s\n%s", *tbOnError, debug.Stack())
	}

	out, err := utils.ToJSON(payload, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	fmt.Println(out)

	if *strict && payload.Status != "ok" {
		return 1
	}
	return 0
}

// runBuild implements the "build" subcommand: it never parses anything
// itself, it only re-renders a Payload that was already produced by
// "parse" (or hand-built) and fed in as JSON on stdin.
func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	tabs := fs.Bool("tabs", false, "indent with tabs instead of spaces")
	indent := fs.Int("indent", 4, "spaces per indent level (ignored with -tabs)")
	dir := fs.String("dir", "", "write one output file per FileConfig into this directory")
	toStdout := fs.Bool("stdout", false, "write the root file's rendering to stdout")
	noHeaders := fs.Bool("no-headers", false, "omit the generated-file header comment")
	if err := fs.Parse(args); err != nil {
		return 3
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "gonginx build: unexpected arguments %v; build reads a Payload from stdin\n", fs.Args())
		return 3
	}
	if *dir == "" && !*toStdout {
		fmt.Fprintln(os.Stderr, "gonginx build: one of --dir or --stdout is required")
		return 3
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: reading stdin: %v\n", err)
		return 2
	}
	payload, err := utils.FromJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	if len(payload.Config) == 0 {
		fmt.Fprintln(os.Stderr, "gonginx: payload has no files")
		return 2
	}

	opts := []dumper.Option{dumper.WithIndent(*indent), dumper.WithTabs(*tabs)}

	if *toStdout {
		fmt.Print(dumper.Build(payload.Config[0].Parsed, opts...))
		return 0
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	for _, fc := range payload.Config {
		fileOpts := opts
		if !*noHeaders {
			fileOpts = append(append([]dumper.Option{}, opts...), dumper.WithHeader("# generated by gonginx from "+fc.File))
		}
		out := dumper.Build(fc.Parsed, fileOpts...)
		outPath := filepath.Join(*dir, filepath.Base(fc.File))
		if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "gonginx: writing %s: %v\n", outPath, err)
			return 2
		}
	}
	return 0
}

// runFormat parses a single file from disk and writes its pretty-printed
// re-rendering to stdout, unlike "build" which only ever re-renders a
// Payload handed to it.
func runFormat(args []string) int {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	tabs := fs.Bool("tabs", true, "indent with tabs instead of spaces")
	indent := fs.Int("indent", 4, "spaces per indent level (ignored with -tabs)")
	if err := fs.Parse(args); err != nil {
		return 3
	}
	file, code := requireOneArg(fs)
	if code != 0 {
		return code
	}

	p := parser.New(parser.WithCombine(true))
	payload, err := p.Parse(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	if payload.Status != "ok" {
		for _, e := range payload.Errors {
			fmt.Fprintf(os.Stderr, "gonginx: %s:%d: %s\n", e.File, e.Line, e.Error)
		}
		return 1
	}

	opts := []dumper.Option{dumper.WithIndent(*indent), dumper.WithTabs(*tabs)}
	fmt.Print(dumper.Build(payload.Config[0].Parsed, opts...))
	return 0
}

func runMinify(args []string) int {
	fs := flag.NewFlagSet("minify", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 3
	}
	file, code := requireOneArg(fs)
	if code != 0 {
		return code
	}

	p := parser.New(parser.WithCombine(true))
	payload, err := p.Parse(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	if payload.Status != "ok" {
		return 1
	}

	fmt.Print(dumper.Build(payload.Config[0].Parsed, dumper.WithMinify(true)))
	return 0
}

func runLex(args []string) int {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 3
	}
	file, code := requireOneArg(fs)
	if code != 0 {
		return code
	}

	f, err := os.Open(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	defer f.Close()

	lex := token.New(f)
	for {
		tok, ok := lex.Next()
		if !ok {
			break
		}
		fmt.Printf("%d\t%q\tquoted=%v\n", tok.Line, tok.Value, tok.Quoted)
	}
	if err := lex.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "gonginx: %v\n", err)
		return 2
	}
	return 0
}

func requireOneArg(fs *flag.FlagSet) (string, int) {
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "gonginx %s: expected exactly one file argument\n", fs.Name())
		return "", 3
	}
	return fs.Arg(0), 0
}
