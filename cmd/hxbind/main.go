package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pthm/hxbind"
	"github.com/pthm/hxbind/internal/config"
	"github.com/pthm/hxbind/internal/ctxlog"
)

const version = "0.1.0"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cli holds the streams and settings shared by every command.
type cli struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	cmd := args[0]
	flags, rest, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(flags["config"])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if out, ok := flags["output"]; ok {
		cfg.Output = out
	}
	if key, ok := flags["key"]; ok {
		cfg.Key = key
	}
	if _, ok := flags["strict"]; ok {
		cfg.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx = ctxlog.WithLogger(ctx, cfg.Log.NewLogger(stderr))
	c := &cli{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}

	switch cmd {
	case "scan":
		return c.exit(c.runScan(ctx, rest, false))
	case "check":
		return c.exit(c.runScan(ctx, rest, true))
	case "attr":
		return c.exit(c.runConvert(rest, flags, hxbind.PropertyNameToAttributeName))
	case "prop":
		return c.exit(c.runConvert(rest, flags, hxbind.AttributeNameToPropertyName))
	case "version":
		fmt.Fprintf(stdout, "hxbind version %s\n", version)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		printUsage(stderr)
		return 1
	}
}

func (c *cli) exit(err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errDiagnostics) {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
	}
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `hxbind - directive scanner for data-* binding attributes

Usage:
  hxbind <command> [options] [arguments]

Commands:
  scan [files]          Print the directives of every element (stdin if no files)
  check [files]         Print diagnostics only; exit 1 if there are any
  attr <property>       Convert a property path to an attribute name
  prop <attribute>      Convert an attribute name to a property path
  version               Print version
  help                  Show this help

Options:
  --config <file>       YAML configuration file
  --output <format>     text | json | dump | manifest
  --key <key>           Manifest signing key
  --strict              Exit 1 when scan produces diagnostics
  --prefix <prefix>     Attribute prefix for attr/prop (default "data-")

Examples:
  hxbind scan index.html
  hxbind scan --output json templates/*.html
  hxbind check --config hxbind.yaml index.html
  hxbind attr user.firstName              # data-user.first-name
  hxbind prop data-test-attr---nested     # testAttr-Nested`)
}

// valueFlags take an argument; any other --flag is boolean.
var valueFlags = map[string]bool{
	"config": true,
	"output": true,
	"key":    true,
	"prefix": true,
}

func parseFlags(args []string) (map[string]string, []string, error) {
	flags := make(map[string]string)
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") || arg == "--" {
			rest = append(rest, arg)
			continue
		}
		name, value, hasValue := strings.Cut(arg[2:], "=")
		if !valueFlags[name] {
			flags[name] = value
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("flag --%s requires a value", name)
			}
			i++
			value = args[i]
		}
		flags[name] = value
	}
	return flags, rest, nil
}

func (c *cli) runConvert(args []string, flags map[string]string, convert func(string, string) string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing name")
	}
	prefix := hxbind.DefaultPrefix
	if p, ok := flags["prefix"]; ok {
		prefix = p
	}
	for _, name := range args {
		fmt.Fprintln(c.stdout, convert(name, prefix))
	}
	return nil
}
