// Command agent-booster is the CLI entry point for the apply/batch/
// explain/history/watch/version command tree in internal/cli.
package main

import "github.com/mvp-joe/agent-booster/internal/cli"

func main() {
	cli.Execute()
}
