package control

import (
	"fmt"

	"github.com/gethiox/mfx/internal/pkg/logger"
	"github.com/gethiox/mfx/internal/pkg/preset"
)

// Boot brings controller to Start mode with the last used preset applied to outputs.
// Uninitialized store gets factory reset first.
func (c *Controller) Boot() error {
	ok, err := c.store.IsInitialized()
	if err != nil {
		return fmt.Errorf("failed to check store: %w", err)
	}
	if !ok {
		log.Info("store is not initialized, performing factory reset", logger.Warning)
		err = c.store.FactoryReset()
		if err != nil {
			return fmt.Errorf("factory reset failed: %w", err)
		}
	}

	m, err := c.store.ReadMidiMap()
	if err != nil {
		return fmt.Errorf("failed to read midi mapping: %w", err)
	}
	for i, target := range m {
		if int(target) >= preset.Count {
			log.Info(fmt.Sprintf("midi mapping entry %d points at missing preset %d, reset", i+1, int(target)+1), logger.Warning)
			m[i] = uint8(i)
		}
	}
	c.midiMap = m
	c.committedMap = m

	slot, err := c.store.ReadLastUsedIndex()
	if err != nil {
		log.Info(fmt.Sprintf("last used preset unavailable (%v), falling back to first one", err), logger.Warning)
		slot = 0
	}

	p, err := c.store.ReadPreset(slot)
	if err != nil {
		return fmt.Errorf("failed to read preset %d: %w", slot+1, err)
	}
	c.current = p
	c.slot = slot
	c.candidate = slot
	c.applyOutputs()

	c.mode = Start
	c.pending = nil
	c.enterStart()
	log.Info(fmt.Sprintf("booted with preset %d: %s", slot+1, p), logger.Info)
	return nil
}
