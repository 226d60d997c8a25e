package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m3o/safe/internal/support"
	"github.com/m3o/safe/pkg/safe"
)

type SlotsCmd struct {
}

func (c *SlotsCmd) Run(g *Globals) error {
	s, err := support.OpenSafe(g.options())
	if err != nil {
		return err
	}
	return handleSlots(s, os.Stdout)
}

func handleSlots(s *safe.Safe, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tKEY\tSTATUS")
	for _, slot := range safe.Slots() {
		value, err := s.Retrieve(slot)
		var status string
		switch {
		case errors.Is(err, safe.ErrDecryption):
			status = color.RedString("unreadable")
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", slot, err)
		case value == "":
			status = color.YellowString("unset")
		default:
			status = color.GreenString("set")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", slot, slot.Key(), status)
	}
	return tw.Flush()
}
