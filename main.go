// infra – lifecycle manager for hosted control plane instances on AWS.
// Wraps the hypershift and oc CLIs; the instance directory on disk is the
// record of what exists.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/csrwng/infra/cmd"
	"github.com/csrwng/infra/internal/audit"
	"github.com/csrwng/infra/internal/exitcode"
	_ "github.com/csrwng/infra/schemas"
)

func main() {
	start := time.Now()
	if err := cmd.Execute(); err != nil {
		code := exitcode.Of(err)
		event := audit.BuildEvent(os.Args, "failure", code, time.Since(start))
		_ = audit.Write(event)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(code)
	}

	event := audit.BuildEvent(os.Args, "success", exitcode.OK, time.Since(start))
	_ = audit.Write(event)
}
