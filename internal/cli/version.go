package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/m3o/safe/version"
)

type VersionCmd struct {
}

func (c *VersionCmd) Run(g *Globals) error {
	handleVersion(os.Stdout)
	return nil
}

func handleVersion(out io.Writer) {
	fmt.Fprintf(out, "safe\n")
	fmt.Fprintf(out, "Version: %s\n", version.Version)
}
