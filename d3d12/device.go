package d3d12

//go:generate mockgen -source device.go -destination mocks/mocks.go -package mock_d3d12

// DescriptorHeap is a driver-level shader-visible descriptor heap object.
type DescriptorHeap interface {
	// Desc returns the description the heap was created with.
	Desc() DescriptorHeapDesc
	// CPUDescriptorHandleForHeapStart returns the CPU address of slot 0.
	CPUDescriptorHandleForHeapStart() CPUDescriptorHandle
	// GPUDescriptorHandleForHeapStart returns the GPU address of slot 0.
	GPUDescriptorHandleForHeapStart() GPUDescriptorHandle
	// SetName attaches a debug name to the heap object.
	SetName(name string)
	// Release destroys the underlying heap object. The caller must guarantee
	// the GPU no longer references the heap.
	Release()
}

// Device is the slice of a D3D12 device this module depends on.
type Device interface {
	// CreateDescriptorHeap creates a shader-visible descriptor heap.
	CreateDescriptorHeap(desc DescriptorHeapDesc) (DescriptorHeap, error)
	// DescriptorHandleIncrementSize reports the per-descriptor byte stride
	// for the given heap type.
	DescriptorHandleIncrementSize(heapType DescriptorHeapType) int
	// CopyDescriptors copies len(src) CPU-resident descriptors into
	// shader-visible memory starting at dest.
	CopyDescriptors(dest CPUDescriptorHandle, src []CPUDescriptorHandle, heapType DescriptorHeapType)
}

// FrameFence exposes the device's monotonically increasing frame-completion
// fence.
type FrameFence interface {
	// NextFenceToSignal returns the fence value the current frame will signal
	// on completion. It only ever increases.
	NextFenceToSignal() uint64
}

// DeferredDeleter runs the provided closure once all GPU work submitted
// before the call has retired.
type DeferredDeleter interface {
	DeferredDelete(fn func())
}

// BindlessManager reports, per resource category, whether a bindless
// configuration addresses that category without explicit descriptor tables.
type BindlessManager interface {
	AreResourcesBindless(config BindlessConfiguration) bool
	AreSamplersBindless(config BindlessConfiguration) bool
}
