package dtable_test

import (
	"testing"

	"github.com/d3dwrapper/quiver/d3d12"
	mock_d3d12 "github.com/d3dwrapper/quiver/d3d12/mocks"
	"github.com/d3dwrapper/quiver/dtable"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCache(t *testing.T, options dtable.CreateOptions, numWorkers int) (poolSetup, *dtable.ExplicitDescriptorCache) {
	t.Helper()

	setup := newTestPool(t, options)
	cache := dtable.NewExplicitDescriptorCache(setup.pool, numWorkers)
	require.NoError(t, cache.Init(4, 60, 16, d3d12.BindlessDisabled))

	return setup, cache
}

func TestAllocateDeduplicatedIsIdempotent(t *testing.T) {
	setup, cache := newTestCache(t, dtable.CreateOptions{}, 2)
	defer cache.Destroy()

	versions := []uint32{7, 7, 9}
	table := handles(0x100, 0x200, 0x300)

	baseIndex := cache.AllocateDeduplicated(versions, table, d3d12.DescriptorHeapTypeView, 0)
	require.NotEqual(t, dtable.NoAllocation, baseIndex)

	copiesAfterFirst := setup.device.copies()
	allocatedAfterFirst := cache.ViewHeap.NumAllocatedDescriptors()

	// The identical request from the same worker is a pure cache hit.
	require.Equal(t, baseIndex, cache.AllocateDeduplicated(versions, table, d3d12.DescriptorHeapTypeView, 0))
	require.Equal(t, copiesAfterFirst, setup.device.copies())
	require.Equal(t, allocatedAfterFirst, cache.ViewHeap.NumAllocatedDescriptors())
}

func TestVersionTagsAreLoadBearing(t *testing.T) {
	_, cache := newTestCache(t, dtable.CreateOptions{}, 1)
	defer cache.Destroy()

	table := handles(0x100, 0x200, 0x300)

	first := cache.AllocateDeduplicated([]uint32{1, 1, 1}, table, d3d12.DescriptorHeapTypeView, 0)
	second := cache.AllocateDeduplicated([]uint32{1, 1, 2}, table, d3d12.DescriptorHeapTypeView, 0)

	// Same handle content, different generation: must be distinct tables.
	require.NotEqual(t, dtable.NoAllocation, first)
	require.NotEqual(t, dtable.NoAllocation, second)
	require.NotEqual(t, first, second)
}

func TestSamplerTablesDeduplicateAcrossWorkers(t *testing.T) {
	_, cache := newTestCache(t, dtable.CreateOptions{}, 2)
	defer cache.Destroy()

	versions := []uint32{3, 3}
	table := handles(0xAA, 0xBB)

	first := cache.AllocateDeduplicated(versions, table, d3d12.DescriptorHeapTypeSampler, 0)
	require.NotEqual(t, dtable.NoAllocation, first)

	writtenAfterFirst := cache.SamplerHeap.NumWrittenSamplerDescriptors()
	allocatedAfterFirst := cache.SamplerHeap.NumAllocatedDescriptors()

	// Worker 1's map misses, but the exhaustive search finds worker 0's table.
	second := cache.AllocateDeduplicated(versions, table, d3d12.DescriptorHeapTypeSampler, 1)
	require.Equal(t, first, second)
	require.Equal(t, writtenAfterFirst, cache.SamplerHeap.NumWrittenSamplerDescriptors())
	require.Equal(t, allocatedAfterFirst, cache.SamplerHeap.NumAllocatedDescriptors())
}

func TestSamplerDeduplicationCanBeDisabled(t *testing.T) {
	_, cache := newTestCache(t, dtable.CreateOptions{Flags: dtable.CreateDisableSamplerDeduplication}, 2)
	defer cache.Destroy()

	versions := []uint32{3, 3}
	table := handles(0xAA, 0xBB)

	first := cache.AllocateDeduplicated(versions, table, d3d12.DescriptorHeapTypeSampler, 0)
	second := cache.AllocateDeduplicated(versions, table, d3d12.DescriptorHeapTypeSampler, 1)

	// Without the exhaustive search, each worker writes its own copy.
	require.NotEqual(t, dtable.NoAllocation, first)
	require.NotEqual(t, dtable.NoAllocation, second)
	require.NotEqual(t, first, second)
}

func TestBindlessCategoriesSkipHeaps(t *testing.T) {
	ctrl := gomock.NewController(t)

	bindless := mock_d3d12.NewMockBindlessManager(ctrl)
	bindless.EXPECT().AreResourcesBindless(d3d12.BindlessAllShaders).Return(true)
	bindless.EXPECT().AreSamplersBindless(d3d12.BindlessAllShaders).Return(true)

	setup := newTestPool(t, dtable.CreateOptions{BindlessManager: bindless})

	cache := dtable.NewExplicitDescriptorCache(setup.pool, 1)
	require.NoError(t, cache.Init(0, 60, 16, d3d12.BindlessAllShaders))

	require.True(t, cache.BindlessViews())
	require.True(t, cache.BindlessSamplers())

	// Neither heap was obtained: nothing was created on the device.
	require.Equal(t, 0, setup.device.createCount())

	// Allocation requests against a bindless category fail soft with the
	// sentinel rather than touching the missing heap.
	require.Equal(t, dtable.NoAllocation,
		cache.AllocateDeduplicated([]uint32{1, 1}, handles(0x10, 0x20), d3d12.DescriptorHeapTypeView, 0))
	require.Equal(t, dtable.NoAllocation,
		cache.AllocateDeduplicated([]uint32{1, 1}, handles(0x10, 0x20), d3d12.DescriptorHeapTypeSampler, 0))
}

func TestBindlessViewsStillAllocateConstantShare(t *testing.T) {
	ctrl := gomock.NewController(t)

	bindless := mock_d3d12.NewMockBindlessManager(ctrl)
	bindless.EXPECT().AreResourcesBindless(d3d12.BindlessAllShaders).Return(true)
	bindless.EXPECT().AreSamplersBindless(d3d12.BindlessAllShaders).Return(false)

	setup := newTestPool(t, dtable.CreateOptions{BindlessManager: bindless})

	cache := dtable.NewExplicitDescriptorCache(setup.pool, 1)
	require.NoError(t, cache.Init(4, 60, 16, d3d12.BindlessAllShaders))
	defer cache.Destroy()

	// Only the constant share is carried in the view heap when views are
	// bindless: 4 rounds up to a 4-slot heap, not 64.
	require.Equal(t, 4, cache.ViewHeap.MaxDescriptors())
	require.Equal(t, 16, cache.SamplerHeap.MaxDescriptors())
}

func TestViewHeapOverflowSkipsBinding(t *testing.T) {
	setup := newTestPool(t, dtable.CreateOptions{ViewHeapMaxDescriptors: 8})

	cache := dtable.NewExplicitDescriptorCache(setup.pool, 1)
	require.NoError(t, cache.Init(0, 8, 16, d3d12.BindlessDisabled))
	defer cache.Destroy()

	first := cache.AllocateDeduplicated([]uint32{1, 1, 1, 1, 1, 1}, handles(1, 2, 3, 4, 5, 6), d3d12.DescriptorHeapTypeView, 0)
	require.Equal(t, 0, first)

	// The second distinct table does not fit; the caller sees the sentinel
	// and skips binding, the frame keeps running.
	second := cache.AllocateDeduplicated([]uint32{2, 2, 2, 2, 2, 2}, handles(7, 8, 9, 10, 11, 12), d3d12.DescriptorHeapTypeView, 0)
	require.Equal(t, dtable.NoAllocation, second)

	// A failed allocation must not poison the dedup map.
	require.Equal(t, dtable.NoAllocation,
		cache.AllocateDeduplicated([]uint32{2, 2, 2, 2, 2, 2}, handles(7, 8, 9, 10, 11, 12), d3d12.DescriptorHeapTypeView, 0))
}

func TestReservedRangesServeViewTablesFirst(t *testing.T) {
	options := dtable.CreateOptions{
		ViewHeapMaxDescriptors:           16,
		ReservedViewDescriptorsPerWorker: 4,
	}
	setup := newTestPool(t, options)

	cache := dtable.NewExplicitDescriptorCache(setup.pool, 1)
	require.NoError(t, cache.Init(0, 16, 16, d3d12.BindlessDisabled))
	defer cache.Destroy()

	// The carve itself consumed the first 4 slots.
	require.Equal(t, 4, cache.ViewHeap.NumAllocatedDescriptors())

	first := cache.AllocateDeduplicated([]uint32{1, 1}, handles(0x10, 0x20), d3d12.DescriptorHeapTypeView, 0)
	second := cache.AllocateDeduplicated([]uint32{2, 2}, handles(0x30, 0x40), d3d12.DescriptorHeapTypeView, 0)
	require.Equal(t, 0, first)
	require.Equal(t, 2, second)

	// The reserved range is exhausted: the next table falls back to the
	// shared bump allocator, which starts after the carve.
	third := cache.AllocateDeduplicated([]uint32{3, 3}, handles(0x50, 0x60), d3d12.DescriptorHeapTypeView, 0)
	require.Equal(t, 4, third)
}

func TestCacheDestroyReturnsHeapsToPool(t *testing.T) {
	setup, cache := newTestCache(t, dtable.CreateOptions{}, 1)

	viewHeap := setup.device.heaps[0]

	cache.Destroy()

	// The immediate deleter ran the release, so a fresh cache checks the same
	// heaps back out of the pool.
	replacement := dtable.NewExplicitDescriptorCache(setup.pool, 1)
	require.NoError(t, replacement.Init(4, 60, 16, d3d12.BindlessDisabled))
	defer replacement.Destroy()

	require.Equal(t, 2, setup.device.createCount())
	require.Equal(t, viewHeap.cpuBase, replacement.ViewHeap.GetDescriptorCPU(0).Ptr)
}

func TestUsageStatistics(t *testing.T) {
	_, cache := newTestCache(t, dtable.CreateOptions{}, 1)
	defer cache.Destroy()

	cache.AllocateDeduplicated([]uint32{1, 1, 1}, handles(1, 2, 3), d3d12.DescriptorHeapTypeView, 0)
	cache.AllocateDeduplicated([]uint32{1, 1}, handles(4, 5), d3d12.DescriptorHeapTypeSampler, 0)
	cache.AllocateDeduplicated([]uint32{2, 2}, handles(6, 7), d3d12.DescriptorHeapTypeSampler, 0)

	stats := cache.UsageStatistics()
	require.Equal(t, 3, stats.UsedViewDescriptors)
	require.Equal(t, 4, stats.UsedSamplerDescriptors)
	require.Equal(t, 4, stats.MaxUsedSamplerDescriptors)
}
