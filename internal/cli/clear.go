package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/m3o/safe/internal/support"
	"github.com/m3o/safe/pkg/safe"
)

type ClearCmd struct {
	Slot string `arg:"" help:"Slot name (access-token, user-id, api-key), or 'all'."`
}

func (c *ClearCmd) Run(g *Globals) error {
	var slots []safe.Slot
	if c.Slot == "all" {
		slots = safe.Slots()
	} else {
		slot, err := safe.ParseSlot(c.Slot)
		if err != nil {
			return err
		}
		slots = []safe.Slot{slot}
	}
	s, err := support.OpenSafe(g.options())
	if err != nil {
		return err
	}
	return handleClear(s, slots, os.Stdout)
}

func handleClear(s *safe.Safe, slots []safe.Slot, out io.Writer) error {
	for _, slot := range slots {
		logger.Infof("Clearing slot %s", slot)
		if err := s.Store(slot, ""); err != nil {
			return fmt.Errorf("failed to clear %s: %w", slot, err)
		}
		fmt.Fprintf(out, "Cleared %s.\n", slot)
	}
	return nil
}
