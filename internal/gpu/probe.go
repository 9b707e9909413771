package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// AdapterReport describes one adapter seen by Probe.
type AdapterReport struct {
	Backend string
	Name    string
	Type    gputypes.DeviceType
	Driver  string
}

func (r AdapterReport) String() string {
	return fmt.Sprintf("%s: %s (%s, %s)", r.Backend, r.Name, r.Type, r.Driver)
}

// Probe lists the adapters of every registered backend in preference
// order. Backends that fail to create an instance are reported in errs
// and skipped.
func Probe(prefs []string) (reports []AdapterReport, errs map[string]error) {
	reg := Registry(prefs)
	errs = make(map[string]error)
	for _, name := range Order(reg, prefs) {
		backend := reg.Get(name)
		if backend == nil {
			continue
		}
		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
		if err != nil {
			errs[name] = err
			continue
		}
		for _, a := range instance.EnumerateAdapters(nil) {
			reports = append(reports, AdapterReport{
				Backend: name,
				Name:    a.Info.Name,
				Type:    a.Info.DeviceType,
				Driver:  a.Info.Driver,
			})
		}
		instance.Destroy()
	}
	return reports, errs
}
