package gpu

import (
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Backend names accepted in preference lists.
const (
	NameVulkan   = "vulkan"
	NameMetal    = "metal"
	NameDX12     = "dx12"
	NameGL       = "gl"
	NameSoftware = "software"
)

// DefaultPreference is the backend order used when none is configured.
var DefaultPreference = []string{NameVulkan, NameMetal, NameDX12, NameGL, NameSoftware}

// BackendName returns the preference-list name of a backend variant.
// The CPU backends register as gputypes.BackendEmpty and are all called
// "software".
func BackendName(b gputypes.Backend) string {
	switch b {
	case gputypes.BackendVulkan:
		return NameVulkan
	case gputypes.BackendMetal:
		return NameMetal
	case gputypes.BackendDX12:
		return NameDX12
	case gputypes.BackendGL:
		return NameGL
	case gputypes.BackendEmpty:
		return NameSoftware
	default:
		return strings.ToLower(b.String())
	}
}

// Registry returns a registry of every backend currently registered with
// hal, prioritised by prefs. Unknown names in prefs are ignored.
func Registry(prefs []string) *gpucontext.Registry[hal.Backend] {
	reg := gpucontext.NewRegistry[hal.Backend](gpucontext.WithPriority(normalize(prefs)...))
	for _, variant := range hal.AvailableBackends() {
		reg.Register(BackendName(variant), func() hal.Backend {
			b, _ := hal.GetBackend(variant)
			return b
		})
	}
	return reg
}

// Order returns the registered backend names in the order Open tries
// them: preferred names first, then the rest alphabetically.
func Order(reg *gpucontext.Registry[hal.Backend], prefs []string) []string {
	var names []string
	for _, name := range normalize(prefs) {
		if reg.Has(name) && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	rest := reg.Available()
	slices.Sort(rest)
	for _, name := range rest {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func normalize(prefs []string) []string {
	if len(prefs) == 0 {
		return DefaultPreference
	}
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
