// Package version implements the `rolodex version` command.
package version

import (
	"fmt"

	"github.com/rolodex-hq/rolodex/internal/cmd/base"
	"github.com/rolodex-hq/rolodex/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the rolodex version"
}

func (c *Command) Help() string {
	return "Usage: rolodex version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(fmt.Sprintf("rolodex v%s", version.Version))
	return 0
}
