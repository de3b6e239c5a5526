package main

import (
	"fmt"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/process"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if err := validateSiteURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	if c.Concurrency > 0 {
		deps.Processor.Concurrency = c.Concurrency
	}

	progress := func(event process.ProgressEvent) {
		switch event.Type {
		case process.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d listings\n", event.Total)
		case process.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n",
				event.Completed, event.Total, process.TruncateURL(event.URL, 60))
		case process.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n",
				process.TruncateURL(event.URL, 60), event.Error)
		case process.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Processor.ProcessBatch(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", anuncio.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d listings, %d failed (%s of descriptions)\n",
		result.Saved, result.Failed, process.FormatBytes(result.Bytes))
	return nil
}
