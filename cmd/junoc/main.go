// junoc is the command-line front end: it lexes and parses source files,
// optionally dumping tokens or the AST, and can run as a diagnostics-only
// language server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/chazu/junoc"
	"github.com/chazu/junoc/ast"
	"github.com/chazu/junoc/langserver"
	"github.com/chazu/junoc/token"
	"github.com/chazu/junoc/wire"
)

func main() {
	showTokens := flag.Bool("tokens", false, "Print the token stream (diagnostics are still reported)")
	showAST := flag.Bool("ast", false, "Print a summary of the parsed module (its signature with -format=cbor)")
	showTimer := flag.Bool("timer", false, "Print lex+parse wall-clock time")
	runTests := flag.Bool("test", false, "Treat the given files as test fixtures: report pass/fail per file")
	format := flag.String("format", "text", "Output format for -tokens/-ast: text or cbor")
	serve := flag.Bool("serve", false, "Start the junoc language server on stdio")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: junoc [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Lexes and parses the given source files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  junoc main.jn                  # Compile and report diagnostics\n")
		fmt.Fprintf(os.Stderr, "  junoc --tokens main.jn         # Dump the token stream\n")
		fmt.Fprintf(os.Stderr, "  junoc --ast --format=cbor a.jn # Dump the module signature as CBOR\n")
		fmt.Fprintf(os.Stderr, "  junoc --serve                  # Start the language server on stdio\n")
	}
	flag.Parse()

	if *serve {
		srv := langserver.New()
		if err := srv.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "language server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *format != "text" && *format != "cbor" {
		fmt.Fprintf(os.Stderr, "unknown --format %q: want text or cbor\n", *format)
		os.Exit(1)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	sessionID := uuid.New().String()
	failed := false

	for _, path := range paths {
		if !processFile(sessionID, path, *showTokens, *showAST, *showTimer, *runTests, *format) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func processFile(sessionID, path string, showTokens, showAST, showTimer, runTests bool, format string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read: %v\n", path, err)
		return false
	}

	start := time.Now()
	toks, _ := junoc.Tokenize(string(content))
	mod, errs := junoc.Compile(string(content)) // lex and parse diagnostics
	elapsed := time.Since(start)

	if showTimer {
		fmt.Fprintf(os.Stderr, "[%s] %s: lex+parse in %s\n", sessionID, path, elapsed)
	}

	ok := true
	if showTokens {
		if err := dumpTokens(path, toks, format); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			ok = false
		}
	}
	if showAST {
		if err := dumpModule(path, mod, format); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			ok = false
		}
	}

	if runTests {
		if len(errs) == 0 {
			fmt.Printf("PASS %s\n", path)
		} else {
			fmt.Printf("FAIL %s (%d errors)\n", path, len(errs))
		}
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, e)
	}

	return ok && len(errs) == 0
}

func dumpTokens(path string, toks []token.Token, format string) error {
	if format == "cbor" {
		data, err := wire.MarshalTokens(toks)
		if err != nil {
			return fmt.Errorf("marshal tokens: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	for _, t := range toks {
		fmt.Printf("%s:%d:%d: %s\n", path, t.Line, t.Column, t)
	}
	return nil
}

func dumpModule(path string, mod *ast.Module, format string) error {
	if format == "cbor" {
		data, err := wire.MarshalModule(mod)
		if err != nil {
			return fmt.Errorf("marshal module: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	fmt.Printf("%s: %d imports, %d functions, %d types, %d enums, %d declarations\n",
		path, len(mod.Imports), len(mod.Functions), len(mod.UserTypes), len(mod.Enums), len(mod.Decls))
	return nil
}
