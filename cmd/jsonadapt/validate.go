package main

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	jsonadapt "github.com/reoring/jsonadapt"
	js "github.com/reoring/jsonadapt/jsonschema"
)

// errIssuesFound makes the process exit with status 1 after the issues have
// been printed.
var errIssuesFound = errors.New("issues found")

// result is the outcome for one document.
type result struct {
	file   string
	issues jsonadapt.Issues
	err    error
}

func newValidateCmd(o *options) *cobra.Command {
	var (
		schemaFile string
		workers    int
	)
	cmd := &cobra.Command{
		Use:   "validate --schema schema.json doc...",
		Short: "Validate documents against a schema",
		Long: `Validate every document against the schema and print one line per issue as
"file:path: message". Documents are checked concurrently. The exit status is 1
when any document fails to parse or has issues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := o.loadSchema(schemaFile)
			if err != nil {
				return err
			}
			results, err := o.validateAll(s, args, workers)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					fmt.Fprintf(o.stdout, "%s: %v\n", r.file, r.err)
				case len(r.issues) > 0:
					failed++
					for _, it := range r.issues {
						fmt.Fprintf(o.stdout, "%s:%s: %s\n", r.file, it.Path, it.Message)
					}
				}
			}
			o.log.Info().Int("documents", len(results)).Int("failed", failed).Msg("validate")
			if failed > 0 {
				return errIssuesFound
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaFile, "schema", "", "schema document (JSON or YAML)")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of documents validated in parallel")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// validateAll checks files on a bounded pool. Results keep the order of files.
func (o *options) validateAll(s js.Schema, files []string, workers int) ([]result, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	results := make([]result, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		i, file := i, file
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = o.validateOne(s, file)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i] = result{file: file, err: err}
		}
	}
	wg.Wait()
	return results, nil
}

func (o *options) validateOne(s js.Schema, file string) result {
	v, err := o.readDocument(file)
	if err != nil {
		return result{file: file, err: err}
	}
	iss := jsonadapt.Validate(v, s)
	o.log.Debug().Str("file", file).Int("issues", len(iss)).Msg("validated")
	return result{file: file, issues: iss}
}
