package dtable

import (
	"github.com/cockroachdb/errors"
	"github.com/d3dwrapper/quiver/d3d12"
	"github.com/d3dwrapper/quiver/descutils"
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slog"
	"sync/atomic"
)

const workerMapInitialCapacity = 64

// reservedRange is a pre-carved slice of the view heap owned by one worker.
// Allocations within it need no synchronization because a worker index is
// never shared between threads within a frame.
type reservedRange struct {
	baseIndex      int
	used           int
	numDescriptors int
}

func (r *reservedRange) Allocate(numDescriptors int) int {
	if r.used+numDescriptors > r.numDescriptors {
		return NoAllocation
	}

	baseIndex := r.baseIndex + r.used
	r.used += numDescriptors
	return baseIndex
}

// workerData holds one rendering worker's private dedup state. Maps are keyed
// by the combined version/content digest and value the table's base slot
// index within the matching heap.
type workerData struct {
	viewTableCache    *swiss.Map[uint64, int]
	samplerTableCache *swiss.Map[uint64, int]

	reservedViewDescriptors reservedRange
}

// ExplicitDescriptorCache owns one view heap and one sampler heap for a
// frame (or pass) and routes descriptor-table allocations through per-worker
// deduplication. The returned base indices remain valid until Destroy.
type ExplicitDescriptorCache struct {
	logger *slog.Logger
	pool   *HeapPool

	ViewHeap    DescriptorHeap
	SamplerHeap DescriptorHeap

	workers []workerData

	bindlessConfiguration d3d12.BindlessConfiguration
	bindlessViews         bool
	bindlessSamplers      bool

	usedViewDescriptors       atomic.Int64
	usedSamplerDescriptors    atomic.Int64
	maxUsedSamplerDescriptors atomic.Int64
}

// NewExplicitDescriptorCache creates a cache that will draw heaps from pool
// and serve numWorkers concurrent rendering workers. Init must be called
// before the cache can allocate.
func NewExplicitDescriptorCache(pool *HeapPool, numWorkers int) *ExplicitDescriptorCache {
	c := &ExplicitDescriptorCache{
		logger:  pool.logger,
		pool:    pool,
		workers: make([]workerData, numWorkers),
	}

	for workerIndex := range c.workers {
		c.workers[workerIndex].viewTableCache = swiss.NewMap[uint64, int](workerMapInitialCapacity)
		c.workers[workerIndex].samplerTableCache = swiss.NewMap[uint64, int](workerMapInitialCapacity)
	}

	return c
}

// Init sizes and obtains the cache's heaps. The view heap holds
// numConstantDescriptors plus numViewDescriptors slots, unless the bindless
// configuration addresses resources without descriptor tables, in which case
// the view-table share is skipped. The sampler heap is skipped entirely when
// samplers are bindless. Explicit tables and bindless addressing are mutually
// exclusive per resource category, decided once here.
func (c *ExplicitDescriptorCache) Init(numConstantDescriptors, numViewDescriptors, numSamplerDescriptors int, bindlessConfig d3d12.BindlessConfiguration) error {
	c.bindlessConfiguration = bindlessConfig
	if bindlessManager := c.pool.options.BindlessManager; bindlessManager != nil {
		c.bindlessViews = bindlessManager.AreResourcesBindless(bindlessConfig)
		c.bindlessSamplers = bindlessManager.AreSamplersBindless(bindlessConfig)
	}

	totalViewDescriptors := numConstantDescriptors
	if !c.bindlessViews {
		totalViewDescriptors += numViewDescriptors
	}

	if totalViewDescriptors > 0 {
		err := c.ViewHeap.Init(c.pool, totalViewDescriptors, d3d12.DescriptorHeapTypeView)
		if err != nil {
			return errors.Wrap(err, "failed to initialize the explicit view heap")
		}

		if reserved := c.pool.options.ReservedViewDescriptorsPerWorker; reserved > 0 {
			for workerIndex := range c.workers {
				baseIndex := c.ViewHeap.Allocate(reserved)
				if baseIndex == NoAllocation {
					break
				}
				c.workers[workerIndex].reservedViewDescriptors = reservedRange{
					baseIndex:      baseIndex,
					numDescriptors: reserved,
				}
			}
		}
	}

	if !c.bindlessSamplers {
		err := c.SamplerHeap.Init(c.pool, numSamplerDescriptors, d3d12.DescriptorHeapTypeSampler)
		if err != nil {
			return errors.Wrap(err, "failed to initialize the explicit sampler heap")
		}
	}

	return nil
}

// Destroy returns both heaps to the pool (deferred until the GPU retires the
// frame's work) and drops all worker dedup state.
func (c *ExplicitDescriptorCache) Destroy() {
	c.ViewHeap.Destroy()
	c.SamplerHeap.Destroy()

	for workerIndex := range c.workers {
		c.workers[workerIndex].viewTableCache = swiss.NewMap[uint64, int](workerMapInitialCapacity)
		c.workers[workerIndex].samplerTableCache = swiss.NewMap[uint64, int](workerMapInitialCapacity)
		c.workers[workerIndex].reservedViewDescriptors = reservedRange{}
	}
}

// AllocateDeduplicated returns the heap base index for the requested
// descriptor table, reusing a previously written table when one with
// identical content and version tags exists. Returns NoAllocation when the
// view heap is exhausted; the caller must skip binding for that object.
//
// workerIndex must identify the calling worker and must not be used from two
// threads at once.
func (c *ExplicitDescriptorCache) AllocateDeduplicated(descriptorVersions []uint32, descriptors []d3d12.CPUDescriptorHandle, heapType d3d12.DescriptorHeapType, workerIndex int) int {
	heap := c.heapForType(heapType)
	tableCache := c.workers[workerIndex].viewTableCache
	if heapType == d3d12.DescriptorHeapTypeSampler {
		tableCache = c.workers[workerIndex].samplerTableCache
	}

	key := hashDescriptorTable(descriptorVersions, descriptors)

	if baseIndex, ok := tableCache.Get(key); ok {
		if !fullCompareEnabled || heap.CompareDescriptors(baseIndex, descriptors) {
			return baseIndex
		}

		// The digest matched but the underlying descriptors differ. Treat the
		// hit as a miss and let the fresh allocation below overwrite the
		// poisoned entry - returning the cached index would silently bind the
		// wrong resources.
		c.logger.Error("explicit descriptor cache hash collision detected",
			slog.Uint64("Key", key),
			slog.Int("CachedBaseIndex", baseIndex),
			slog.String("HeapType", heapType.String()))
	}

	if heap.exhaustiveSamplerDeduplication && heapType == d3d12.DescriptorHeapTypeSampler && len(c.workers) > 1 {
		// Exhaustive search for a matching sampler table. Sampler heap space
		// is precious (hard limit of 2048 total entries) and per-worker dedup
		// maps introduce cross-worker redundancy, so a map miss scans every
		// sampler slot written so far by any worker.
		//
		// The written counter is bumped after each worker's copy completes,
		// so slots below searchEndPos may belong to tables still being
		// written. Those slots hold the zero "not yet written" sentinel,
		// which never equals a valid handle, so an in-flight table can only
		// be missed here, never falsely matched.
		searchEndPos := heap.NumWrittenSamplerDescriptors()
		for searchIndex := 0; searchIndex+len(descriptors) <= searchEndPos; searchIndex++ {
			if heap.CompareDescriptors(searchIndex, descriptors) {
				tableCache.Put(key, searchIndex)
				return searchIndex
			}
		}
	}

	baseIndex := c.Allocate(descriptors, heapType, workerIndex)
	if baseIndex != NoAllocation {
		tableCache.Put(key, baseIndex)
	}
	return baseIndex
}

// Allocate writes a fresh descriptor table and returns its heap base index,
// bypassing deduplication. Returns NoAllocation when the view heap is
// exhausted.
func (c *ExplicitDescriptorCache) Allocate(descriptors []d3d12.CPUDescriptorHandle, heapType d3d12.DescriptorHeapType, workerIndex int) int {
	heap := c.heapForType(heapType)

	var baseIndex int
	if heapType == d3d12.DescriptorHeapTypeView {
		// The worker's reserved range avoids contention on the shared bump
		// counter for the common case.
		baseIndex = c.workers[workerIndex].reservedViewDescriptors.Allocate(len(descriptors))
		if baseIndex == NoAllocation {
			baseIndex = heap.Allocate(len(descriptors))
		}
	} else {
		baseIndex = heap.Allocate(len(descriptors))
	}

	if baseIndex == NoAllocation {
		return NoAllocation
	}

	heap.CopyDescriptors(baseIndex, descriptors)

	if heapType == d3d12.DescriptorHeapTypeView {
		c.usedViewDescriptors.Add(int64(len(descriptors)))
	} else {
		if heap.exhaustiveSamplerDeduplication {
			heap.numWrittenSamplerDescriptors.Add(int64(len(descriptors)))
		}

		c.usedSamplerDescriptors.Add(int64(len(descriptors)))

		allocated := heap.numAllocatedDescriptors.Load()
		for {
			peak := c.maxUsedSamplerDescriptors.Load()
			if allocated <= peak || c.maxUsedSamplerDescriptors.CompareAndSwap(peak, allocated) {
				break
			}
		}
	}

	return baseIndex
}

// UsageStatistics returns a snapshot of how many descriptor slots this cache
// has written.
func (c *ExplicitDescriptorCache) UsageStatistics() descutils.UsageStatistics {
	return descutils.UsageStatistics{
		UsedViewDescriptors:       int(c.usedViewDescriptors.Load()),
		UsedSamplerDescriptors:    int(c.usedSamplerDescriptors.Load()),
		MaxUsedSamplerDescriptors: int(c.maxUsedSamplerDescriptors.Load()),
	}
}

// BindlessViews reports whether view tables are bypassed in favor of bindless
// addressing for this cache instance.
func (c *ExplicitDescriptorCache) BindlessViews() bool {
	return c.bindlessViews
}

// BindlessSamplers reports whether sampler tables are bypassed in favor of
// bindless addressing for this cache instance.
func (c *ExplicitDescriptorCache) BindlessSamplers() bool {
	return c.bindlessSamplers
}

func (c *ExplicitDescriptorCache) heapForType(heapType d3d12.DescriptorHeapType) *DescriptorHeap {
	if heapType == d3d12.DescriptorHeapTypeSampler {
		return &c.SamplerHeap
	}
	return &c.ViewHeap
}
