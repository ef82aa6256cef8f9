// Command jsonql runs a compiled selector, or a selector/mutator pair,
// against a JSON or YAML document read from a file or stdin, and writes
// the result to stdout as JSON or YAML.
//
//	jsonql -q '@.prices[@ > 100]' data.json
//	cat data.json | jsonql -q '@.a + @.b'
//	jsonql -q '@.items[0].price' -mutate '@ * 1.1' -format yaml data.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/chcg/jsonql"
	"github.com/chcg/jsonql/pkg/evaluator"
	"github.com/chcg/jsonql/pkg/value"
)

// config is the shape of $XDG_CONFIG_HOME/jsonql/config.toml (falling back
// to ~/.jsonql.toml). Command-line flags always take precedence over it.
type config struct {
	Format  string `toml:"format"`
	Pretty  bool   `toml:"pretty"`
	Timeout string `toml:"timeout"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "jsonql:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := loadConfig()

	fs := flag.NewFlagSet("jsonql", flag.ContinueOnError)
	query := fs.String("q", "", "selector query (required)")
	mutateQuery := fs.String("mutate", "", "mutator query; when set, -q is applied as the mutator's target path")
	format := fs.String("format", "", "output (and, for YAML, input) format: json or yaml (default: config, then json)")
	pretty := fs.Bool("pretty", false, "force pretty-printed output")
	compact := fs.Bool("compact", false, "force compact output")
	timeoutFlag := fs.String("timeout", "", "evaluation timeout, e.g. 5s (default: config, then 30s)")
	debug := fs.Bool("debug", false, "enable debug logging of parse/vectorization/non-determinism traces")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *query == "" {
		return fmt.Errorf("-q is required")
	}

	outFormat := *format
	if outFormat == "" {
		outFormat = cfg.Format
	}
	if outFormat == "" {
		outFormat = "json"
	}
	if outFormat != "json" && outFormat != "yaml" {
		return fmt.Errorf("unsupported -format %q: want json or yaml", outFormat)
	}

	timeout := 30 * time.Second
	switch {
	case *timeoutFlag != "":
		d, err := time.ParseDuration(*timeoutFlag)
		if err != nil {
			return fmt.Errorf("-timeout: %w", err)
		}
		timeout = d
	case cfg.Timeout != "":
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		timeout = d
	}

	indent := ""
	switch {
	case *pretty:
		indent = "  "
	case *compact:
		indent = ""
	case cfg.Pretty, isatty.IsTerminal(os.Stdout.Fd()), isatty.IsCygwinTerminal(os.Stdout.Fd()):
		indent = "  "
	}

	srcPath := "-"
	if rest := fs.Args(); len(rest) > 0 {
		srcPath = rest[0]
	}
	raw, err := readInput(srcPath)
	if err != nil {
		return err
	}

	var data value.Value
	if outFormat == "yaml" {
		data, err = valueFromYAML(raw)
	} else {
		data, err = value.FromJSON(raw)
	}
	if err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}

	opts := []evaluator.EvalOption{evaluator.WithTimeout(timeout)}
	if *debug {
		opts = append(opts, evaluator.WithDebug(true), evaluator.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	var result value.Value
	if *mutateQuery != "" {
		result, err = jsonql.Mutate(*query, *mutateQuery, data)
	} else {
		result, err = jsonql.Eval(*query, data, opts...)
	}
	if err != nil {
		return fmt.Errorf("%s", jsonql.Prettify(err))
	}

	return writeOutput(os.Stdout, result, outFormat, indent)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(f *os.File, v value.Value, format, indent string) error {
	switch format {
	case "yaml":
		node, err := valueToYAMLNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		return enc.Encode(node)
	default:
		out, err := value.ToJSON(v, indent)
		if err != nil {
			return err
		}
		_, err = f.Write(append(out, '\n'))
		return err
	}
}

// loadConfig reads $XDG_CONFIG_HOME/jsonql/config.toml, falling back to
// ~/.jsonql.toml. A missing file is not an error: defaults apply.
func loadConfig() config {
	var cfg config
	for _, path := range configPaths() {
		if _, err := toml.DecodeFile(path, &cfg); err == nil {
			return cfg
		}
	}
	return cfg
}

func configPaths() []string {
	home, homeErr := os.UserHomeDir()

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" && homeErr == nil {
		xdg = filepath.Join(home, ".config")
	}

	var paths []string
	if xdg != "" {
		paths = append(paths, filepath.Join(xdg, "jsonql", "config.toml"))
	}
	if homeErr == nil {
		paths = append(paths, filepath.Join(home, ".jsonql.toml"))
	}
	return paths
}

// valueFromYAML decodes a YAML document into a Value tree via yaml.v3's
// Node API, so object key order survives the round trip the same way
// value.FromJSON preserves it for JSON.
func valueFromYAML(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return value.TheNull, nil
	}
	return valueFromYAMLNode(doc.Content[0])
}

func valueFromYAMLNode(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := valueFromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := valueFromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarFromYAMLNode(n)
	case yaml.AliasNode:
		return valueFromYAMLNode(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

func scalarFromYAMLNode(n *yaml.Node) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.TheNull, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, err
		}
		return i, nil
	case "!!float":
		fl, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, err
		}
		return fl, nil
	default:
		return n.Value, nil
	}
}

// valueToYAMLNode is the inverse of valueFromYAMLNode, used to render a
// Value tree back out via yaml.v3 while keeping object key order.
func valueToYAMLNode(v value.Value) (*yaml.Node, error) {
	switch x := v.(type) {
	case value.NullValue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(x, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(x, 'g', -1, 64)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}, nil
	case []value.Value:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			child, err := valueToYAMLNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case *value.Object:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, pair := range x.Pairs() {
			valNode, err := valueToYAMLNode(pair.Value)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}, valNode)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot encode value of type %T as YAML", x)
	}
}
