package dtable

import (
	"github.com/d3dwrapper/quiver/d3d12"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// BuildStatsString dumps the pool's heap counters as a JSON string. When
// detailed is true, every parked free-list entry is listed individually.
func (p *HeapPool) BuildStatsString(detailed bool) string {
	writer := jwriter.NewWriter()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	objState := writer.Object()

	for _, heapType := range []d3d12.DescriptorHeapType{d3d12.DescriptorHeapTypeView, d3d12.DescriptorHeapTypeSampler} {
		stats := p.statsForType(heapType)

		typeObj := objState.Name(heapType.String()).Object()
		typeObj.Name("HeapCount").Int(stats.HeapCount)
		typeObj.Name("DescriptorCount").Int(stats.DescriptorCount)
		typeObj.End()
	}

	objState.Name("AllocatedEntryCount").Int(p.numAllocatedEntries)
	objState.Name("FreeEntryCount").Int(len(p.freeList))

	if detailed {
		arrayState := objState.Name("FreeList").Array()
		for _, entry := range p.freeList {
			entryObj := arrayState.Object()
			entryObj.Name("Type").String(entry.Type.String())
			entryObj.Name("NumDescriptors").Int(entry.NumDescriptors)
			entryObj.Name("LastUsedFrame").Int(int(entry.LastUsedFrame))
			entryObj.Name("LastUsedTime").String(entry.LastUsedTime.String())
			entryObj.End()
		}
		arrayState.End()
	}

	objState.End()

	return string(writer.Bytes())
}
