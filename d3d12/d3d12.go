// Package d3d12 defines the narrow contracts this module requires from a
// Direct3D12 device layer: descriptor handle value types, the shader-visible
// heap type enum with its hardware ceilings, and interfaces for the device,
// frame fence, deferred-deletion queue, and bindless descriptor manager.
//
// Consumers bridge these interfaces to their actual D3D12 binding; the
// descriptor cache itself never touches the driver directly.
package d3d12

// CPUDescriptorHandle is a CPU-visible address of a single descriptor.
type CPUDescriptorHandle struct {
	Ptr uint64
}

// GPUDescriptorHandle is a GPU-visible address of a single descriptor within
// a shader-visible heap.
type GPUDescriptorHandle struct {
	Ptr uint64
}

// DescriptorHeapType selects between the two mutually-exclusive
// shader-visible descriptor pools.
type DescriptorHeapType int32

const (
	// DescriptorHeapTypeView is the CBV/SRV/UAV heap type.
	DescriptorHeapTypeView DescriptorHeapType = iota
	// DescriptorHeapTypeSampler is the sampler heap type.
	DescriptorHeapTypeSampler
)

func (t DescriptorHeapType) String() string {
	switch t {
	case DescriptorHeapTypeView:
		return "View"
	case DescriptorHeapTypeSampler:
		return "Sampler"
	}
	return "Unknown"
}

const (
	// MaxShaderVisibleSamplerHeapSize is the architectural ceiling on
	// shader-visible sampler heap entries.
	MaxShaderVisibleSamplerHeapSize = 2048
	// MaxShaderVisibleDescriptorHeapSizeTier1 is the tier-1 hardware ceiling
	// on shader-visible view heap entries.
	MaxShaderVisibleDescriptorHeapSizeTier1 = 1_000_000
)

// MaxDescriptorsForHeapType returns the hardware ceiling on shader-visible
// descriptors for the provided heap type.
func MaxDescriptorsForHeapType(heapType DescriptorHeapType) int {
	if heapType == DescriptorHeapTypeSampler {
		return MaxShaderVisibleSamplerHeapSize
	}
	return MaxShaderVisibleDescriptorHeapSizeTier1
}

// DescriptorHeapDesc describes a shader-visible descriptor heap to be created
// by the device.
type DescriptorHeapDesc struct {
	Type           DescriptorHeapType
	NumDescriptors int
	NodeMask       uint32
}

// BindlessConfiguration selects which shader classes address resources
// through the global bindless tables instead of explicit descriptor tables.
type BindlessConfiguration int32

const (
	BindlessDisabled BindlessConfiguration = iota
	BindlessRayTracingShaders
	BindlessAllShaders
)
