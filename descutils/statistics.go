package descutils

// Statistics tracks heap-object counts for one descriptor heap type within
// a pool: how many hardware heaps exist and how many descriptor slots they
// provide in total.
type Statistics struct {
	HeapCount       int
	DescriptorCount int
}

func (s *Statistics) Clear() {
	s.HeapCount = 0
	s.DescriptorCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.HeapCount += other.HeapCount
	s.DescriptorCount += other.DescriptorCount
}

func (s *Statistics) AddHeap(numDescriptors int) {
	s.HeapCount++
	s.DescriptorCount += numDescriptors
}

func (s *Statistics) RemoveHeap(numDescriptors int) {
	s.HeapCount--
	s.DescriptorCount -= numDescriptors
}

// UsageStatistics tracks how many descriptor slots have actually been
// written through the dedup layer, as opposed to how many exist.
type UsageStatistics struct {
	UsedViewDescriptors       int
	UsedSamplerDescriptors    int
	MaxUsedSamplerDescriptors int
}

func (s *UsageStatistics) Clear() {
	s.UsedViewDescriptors = 0
	s.UsedSamplerDescriptors = 0
	s.MaxUsedSamplerDescriptors = 0
}
