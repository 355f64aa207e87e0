// control/control.go
// Author: momentics <momentics@gmail.com>
//
// Aggregate implementation of the api.Control contract: config store,
// debug probes, and stats snapshot in a single facade-ready object.

package control

import "github.com/momentics/hioload-ipc/api"

// Controller binds the config store and debug probes behind api.Control.
type Controller struct {
	config *ConfigStore
	probes *DebugProbes
}

// Ensure compliance with api.Control.
var _ api.Control = (*Controller)(nil)

// NewController builds a Controller with runtime probes preinstalled.
func NewController() *Controller {
	c := &Controller{
		config: NewConfigStore(),
		probes: NewDebugProbes(),
	}
	RegisterRuntimeProbes(c.probes)
	return c
}

// GetConfig implements api.Control.
func (c *Controller) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

// SetConfig implements api.Control.
func (c *Controller) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

// Stats implements api.Control by dumping every registered probe.
func (c *Controller) Stats() map[string]any {
	return c.probes.DumpState()
}

// OnReload implements api.Control.
func (c *Controller) OnReload(fn func()) {
	c.config.OnReload(fn)
}

// RegisterDebugProbe implements api.Control.
func (c *Controller) RegisterDebugProbe(name string, fn func() any) {
	c.probes.RegisterProbe(name, fn)
}

// Config exposes the underlying store for typed reads.
func (c *Controller) Config() *ConfigStore { return c.config }
