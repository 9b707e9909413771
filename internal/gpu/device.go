package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/portfolio"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrNoAdapter is returned when no registered backend exposes an adapter.
	ErrNoAdapter = errors.New("gpu: no GPU adapter available")

	// ErrNoHalDevice is returned when a host provider does not expose its
	// HAL device and queue.
	ErrNoHalDevice = errors.New("gpu: provider does not expose a HAL device")
)

// halProvider is implemented by hosts that share their HAL objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Device is an open HAL device with its queue.
type Device struct {
	// Backend is the preference-list name of the backend.
	Backend string

	// Info describes the adapter the device was opened on.
	Info gputypes.AdapterInfo

	Device hal.Device
	Queue  hal.Queue

	mu       sync.Mutex
	instance hal.Instance
	owned    bool
	closed   bool
}

// Open opens a device on the first backend in preference order that has an
// adapter. Within a backend, discrete GPUs are preferred over integrated
// ones, then virtual GPUs, then CPU adapters.
func Open(prefs []string) (*Device, error) {
	reg := Registry(prefs)
	var errs []error
	for _, name := range Order(reg, prefs) {
		d, err := openBackend(name, reg.Get(name))
		if err == nil {
			return d, nil
		}
		portfolio.Logger().Warn("backend unavailable", "backend", name, "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if len(errs) == 0 {
		return nil, ErrNoAdapter
	}
	return nil, fmt.Errorf("%w: %w", ErrNoAdapter, errors.Join(errs...))
}

func openBackend(name string, backend hal.Backend) (*Device, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend %q is not registered", name)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	best, ok := pickAdapter(adapters)
	if !ok {
		instance.Destroy()
		return nil, errors.New("no adapters")
	}

	open, err := best.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open %s: %w", best.Info.Name, err)
	}

	portfolio.Logger().Info("gpu device opened",
		"backend", name,
		"adapter", best.Info.Name,
		"type", best.Info.DeviceType,
		"driver", best.Info.Driver,
	)
	return &Device{
		Backend:  name,
		Info:     best.Info,
		Device:   open.Device,
		Queue:    open.Queue,
		instance: instance,
		owned:    true,
	}, nil
}

// adapterRank orders device types, lower is better.
func adapterRank(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	case gputypes.DeviceTypeVirtualGPU:
		return 2
	case gputypes.DeviceTypeCPU:
		return 3
	default:
		return 4
	}
}

// pickAdapter returns the best ranked adapter, the first one on ties.
func pickAdapter(adapters []hal.ExposedAdapter) (hal.ExposedAdapter, bool) {
	if len(adapters) == 0 {
		return hal.ExposedAdapter{}, false
	}
	best := 0
	for i := 1; i < len(adapters); i++ {
		if adapterRank(adapters[i].Info.DeviceType) < adapterRank(adapters[best].Info.DeviceType) {
			best = i
		}
	}
	return adapters[best], true
}

// FromProvider adopts the HAL device of a host. The returned Device does
// not own it: Close leaves it open.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHalDevice
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrNoHalDevice
	}

	info := provider.AdapterInfo()
	portfolio.Logger().Info("gpu device adopted", "adapter", info.Name, "type", info.Type)
	return &Device{
		Backend: "host",
		Info: gputypes.AdapterInfo{
			Name:       info.Name,
			DeviceType: deviceType(info.Type),
		},
		Device: device,
		Queue:  queue,
	}, nil
}

func deviceType(t gpucontext.AdapterType) gputypes.DeviceType {
	switch t {
	case gpucontext.AdapterTypeDiscrete:
		return gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		return gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		return gputypes.DeviceTypeCPU
	default:
		return gputypes.DeviceTypeOther
	}
}

// Owned reports whether Close destroys the device.
func (d *Device) Owned() bool {
	return d.owned
}

// Close waits for the device to go idle and destroys it if Open created
// it. Safe to call more than once.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if !d.owned {
		return
	}
	if err := d.Device.WaitIdle(); err != nil {
		portfolio.Logger().Warn("wait idle before close", "err", err)
	}
	d.Device.Destroy()
	if d.instance != nil {
		d.instance.Destroy()
	}
}
