package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	jsonadapt "github.com/reoring/jsonadapt"
	"github.com/reoring/jsonadapt/i18n"
	"github.com/reoring/jsonadapt/value"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	maxDepth         int
	maxBytes         int64
	strictDuplicates bool
	lang             string
	logLevel         string

	stdin  io.Reader
	stdout io.Writer
	log    zerolog.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &options{stdin: stdin, stdout: stdout}
	root := &cobra.Command{
		Use:           "jsonadapt",
		Short:         "Format, validate and normalize JSON documents and schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			lvl, err := zerolog.ParseLevel(o.logLevel)
			if err != nil {
				return err
			}
			o.log = zerolog.New(zerolog.ConsoleWriter{Out: zerolog.SyncWriter(stderr), NoColor: true}).Level(lvl).With().Timestamp().Logger()
			i18n.SetLanguage(o.lang)
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.PersistentFlags()
	f.IntVar(&o.maxDepth, "max-depth", 0, "maximum nesting depth of input documents (0 = unlimited)")
	f.Int64Var(&o.maxBytes, "max-bytes", 0, "maximum size of an input document in bytes (0 = unlimited)")
	f.BoolVar(&o.strictDuplicates, "strict-duplicates", false, "reject documents with duplicate object keys")
	f.StringVar(&o.lang, "lang", "en", "message language ("+strings.Join(i18n.Languages(), ", ")+")")
	f.StringVar(&o.logLevel, "log-level", "warn", "log level")

	root.AddCommand(newFmtCmd(o), newValidateCmd(o), newSchemaCmd(o))
	return root
}

// parseOpt turns the flags into parse options. Without --strict-duplicates
// repeated keys are logged and the last occurrence wins.
func (o *options) parseOpt(file string) jsonadapt.ParseOpt {
	opt := jsonadapt.ParseOpt{MaxDepth: o.maxDepth, MaxBytes: o.maxBytes, OnDuplicateKey: jsonadapt.Warn}
	if o.strictDuplicates {
		opt.OnDuplicateKey = jsonadapt.Error
	}
	opt.OnWarning = func(it jsonadapt.Issue) {
		o.log.Warn().Str("file", file).Str("path", it.Path).Msg(it.Message)
	}
	return opt
}

// readDocument loads a JSON or YAML document; "-" reads stdin.
func (o *options) readDocument(file string) (value.Value, error) {
	var (
		b   []byte
		err error
	)
	if file == "-" {
		b, err = io.ReadAll(o.stdin)
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return value.Value{}, err
	}
	return jsonadapt.ParseAuto(b, o.parseOpt(file))
}

// writeValue prints v as compact JSON or YAML followed by a newline.
func (o *options) writeValue(v value.Value, format string) error {
	var (
		b   []byte
		err error
	)
	switch format {
	case "json":
		b, err = value.Encode(v)
		if err == nil {
			b = append(b, '\n')
		}
	case "yaml":
		b, err = value.EncodeYAML(v)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return err
	}
	_, err = o.stdout.Write(b)
	return err
}

func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
