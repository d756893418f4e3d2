package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/iaget/pkg/domain/model"
)

// ScriptName is the invocation record written before each batch run
const ScriptName = "download.sh"

// writeScript persists the curl equivalent of the batch to
// <destination>/download.sh. The file is an audit artifact overwritten
// on every run; the engine never executes it.
func writeScript(destination string, plan model.Plan, req *model.Request) error {
	path := filepath.Join(destination, ScriptName)

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("curl -L -Z --parallel-immediate --parallel-max " + strconv.Itoa(req.Jobs))
	if req.Quiet {
		b.WriteString(" -s")
	}
	if !req.Force {
		b.WriteString(" -C -")
	}
	for _, entry := range plan {
		b.WriteString(" \\\n")
		fmt.Fprintf(&b, "  -o %s %s", shellQuote(entry.OutputPath), shellQuote(entry.URL))
	}
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0755); err != nil {
		return goerr.Wrap(err, "failed to write invocation record", goerr.V("path", path))
	}
	// WriteFile applies the mode only on creation; a record left by an
	// earlier run keeps its old mode without this
	if err := os.Chmod(path, 0755); err != nil {
		return goerr.Wrap(err, "failed to set invocation record mode", goerr.V("path", path))
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
