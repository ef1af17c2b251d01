package dtable

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/d3dwrapper/quiver/d3d12"
	"github.com/d3dwrapper/quiver/descutils"
	"golang.org/x/exp/slog"
	"sync/atomic"
)

// DescriptorHeap is a fixed-capacity, append-only region of shader-visible
// descriptor memory backed by a HeapPool entry. Slots are handed out by an
// atomic bump allocator and are never reclaimed individually - the whole heap
// returns to the pool when the owning cache is torn down.
type DescriptorHeap struct {
	pool     *HeapPool
	heapType d3d12.DescriptorHeapType

	cacheEntry HeapPoolEntry
	d3dHeap    d3d12.DescriptorHeap

	maxDescriptors int
	cpuBase        d3d12.CPUDescriptorHandle
	gpuBase        d3d12.GPUDescriptorHandle
	descriptorSize int

	numAllocatedDescriptors atomic.Int64

	exhaustiveSamplerDeduplication bool
	numWrittenSamplerDescriptors   atomic.Int64

	// shadow mirrors the CPU handles written into GPU memory at each slot.
	// Present when the desc_full_compare build tag is active or when
	// exhaustive sampler deduplication needs byte-exact cross-worker
	// comparison. Zero-initialized: workers write slots out of order, so the
	// zero handle is the reserved "not yet written" sentinel and never
	// matches a valid descriptor.
	shadow []d3d12.CPUDescriptorHandle
}

// Init obtains a backing heap of at least maxNumDescriptors slots from the
// pool and records the addressing parameters for it. The resulting capacity
// may exceed the request because the pool rounds and reuses.
func (h *DescriptorHeap) Init(pool *HeapPool, maxNumDescriptors int, heapType d3d12.DescriptorHeapType) error {
	if h.d3dHeap != nil {
		return errors.New("attempting to initialize a descriptor heap that is already in use")
	}

	entry, err := pool.AllocateHeap(heapType, maxNumDescriptors)
	if err != nil {
		return err
	}

	h.pool = pool
	h.heapType = heapType
	h.cacheEntry = entry
	h.d3dHeap = entry.Heap
	h.maxDescriptors = entry.NumDescriptors

	h.cpuBase = h.d3dHeap.CPUDescriptorHandleForHeapStart()
	h.gpuBase = h.d3dHeap.GPUDescriptorHandleForHeapStart()
	if h.cpuBase.Ptr == 0 {
		return errors.Newf("descriptor heap of type %s returned from the heap pool has no valid CPU base address", heapType)
	}

	h.descriptorSize = pool.device.DescriptorHandleIncrementSize(heapType)
	h.exhaustiveSamplerDeduplication = pool.options.Flags&CreateDisableSamplerDeduplication == 0

	if fullCompareEnabled || (h.exhaustiveSamplerDeduplication && heapType == d3d12.DescriptorHeapTypeSampler) {
		h.shadow = make([]d3d12.CPUDescriptorHandle, h.maxDescriptors)
	}

	return nil
}

// Destroy returns the backing heap to the pool once the GPU has retired all
// work referencing it.
func (h *DescriptorHeap) Destroy() {
	if h.d3dHeap == nil {
		return
	}

	h.pool.DeferredReleaseHeap(h.cacheEntry)

	h.d3dHeap = nil
	h.cacheEntry = HeapPoolEntry{}
	h.shadow = nil
}

// Allocate hands out numDescriptors contiguous slots and returns the base
// index, or NoAllocation if the heap is exhausted. Thread-safe: concurrent
// calls receive disjoint ranges via the atomic bump counter.
//
// Sampler heap overflow panics - the 2048-entry sampler ceiling is
// architectural and there is no way to recover within the frame. View heap
// overflow degrades instead: the diagnostic is emitted once per pool and the
// caller is expected to skip binding for the affected object.
func (h *DescriptorHeap) Allocate(numDescriptors int) int {
	// A heap that was never initialized (its resource category is bindless)
	// has no slots to hand out.
	if h.d3dHeap == nil {
		return NoAllocation
	}

	baseIndex := int(h.numAllocatedDescriptors.Add(int64(numDescriptors))) - numDescriptors

	if baseIndex+numDescriptors > h.maxDescriptors {
		if h.heapType == d3d12.DescriptorHeapTypeSampler {
			panic(fmt.Sprintf(
				"dtable: explicit sampler descriptor heap overflow - it is not possible to recover from this error, as the maximum sampler heap size is %d",
				d3d12.MaxShaderVisibleSamplerHeapSize))
		}

		// Multiple allocations may overflow simultaneously; report only once
		// per pool, and only when the heap is already at the configured
		// ceiling so that raising it is actionable advice.
		if h.pool.options.ViewHeapMaxDescriptors <= h.maxDescriptors &&
			h.pool.viewHeapOverflowReported.CompareAndSwap(false, true) {

			h.pool.logger.Error(
				"explicit view descriptor heap overflow, the current frame will not be rendered correctly - raise CreateOptions.ViewHeapMaxDescriptors to fix this",
				slog.Int("MaxNumDescriptors", h.maxDescriptors),
				slog.Int("SuggestedViewHeapMaxDescriptors", h.maxDescriptors*2))
		}

		return NoAllocation
	}

	return baseIndex
}

// CopyDescriptors copies the provided CPU-resident descriptors into the heap
// starting at baseIndex, and mirrors them into the shadow array when one is
// present.
func (h *DescriptorHeap) CopyDescriptors(baseIndex int, descriptors []d3d12.CPUDescriptorHandle) {
	h.pool.device.CopyDescriptors(h.GetDescriptorCPU(baseIndex), descriptors, h.heapType)

	if h.shadow != nil {
		copy(h.shadow[baseIndex:baseIndex+len(descriptors)], descriptors)
	}
}

// CompareDescriptors reports whether every shadow slot in
// [baseIndex, baseIndex+len(descriptors)) is byte-identical to the
// corresponding candidate handle. Requires a shadow array.
func (h *DescriptorHeap) CompareDescriptors(baseIndex int, descriptors []d3d12.CPUDescriptorHandle) bool {
	for i := 0; i < len(descriptors); i++ {
		if h.shadow[baseIndex+i] != descriptors[i] {
			return false
		}
	}
	return true
}

// GetDescriptorCPU returns the CPU address of the descriptor at index.
func (h *DescriptorHeap) GetDescriptorCPU(index int) d3d12.CPUDescriptorHandle {
	descutils.DebugCheckIndex(index, h.maxDescriptors, "descriptor")
	return d3d12.CPUDescriptorHandle{Ptr: h.cpuBase.Ptr + uint64(index*h.descriptorSize)}
}

// GetDescriptorGPU returns the GPU address of the descriptor at index.
func (h *DescriptorHeap) GetDescriptorGPU(index int) d3d12.GPUDescriptorHandle {
	descutils.DebugCheckIndex(index, h.maxDescriptors, "descriptor")
	return d3d12.GPUDescriptorHandle{Ptr: h.gpuBase.Ptr + uint64(index*h.descriptorSize)}
}

// Type returns the heap's descriptor type.
func (h *DescriptorHeap) Type() d3d12.DescriptorHeapType {
	return h.heapType
}

// MaxDescriptors returns the heap's slot capacity.
func (h *DescriptorHeap) MaxDescriptors() int {
	return h.maxDescriptors
}

// NumAllocatedDescriptors returns the number of slots handed out so far. It
// may transiently exceed MaxDescriptors under overflow.
func (h *DescriptorHeap) NumAllocatedDescriptors() int {
	return int(h.numAllocatedDescriptors.Load())
}

// NumWrittenSamplerDescriptors returns the number of sampler slots whose
// writes have completed, for use as an exhaustive-search bound.
func (h *DescriptorHeap) NumWrittenSamplerDescriptors() int {
	return int(h.numWrittenSamplerDescriptors.Load())
}
