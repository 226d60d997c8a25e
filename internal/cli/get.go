package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/m3o/safe/internal/support"
	"github.com/m3o/safe/pkg/safe"
)

type GetCmd struct {
	Slot string `arg:"" help:"Slot name (access-token, user-id, api-key)."`
}

func (c *GetCmd) Run(g *Globals) error {
	slot, err := safe.ParseSlot(c.Slot)
	if err != nil {
		return err
	}
	s, err := support.OpenSafe(g.options())
	if err != nil {
		return err
	}
	return handleGet(s, slot, os.Stdout)
}

func handleGet(s *safe.Safe, slot safe.Slot, out io.Writer) error {
	logger.Infof("Reading secret from slot %s", slot)
	value, err := s.Retrieve(slot)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", slot, err)
	}
	if value == "" {
		return fmt.Errorf("%s is not set", slot)
	}
	fmt.Fprintln(out, value)
	return nil
}
