package emu

// Bus is the single external collaborator of the core: the memory
// subsystem it fetches instructions and transfers data through. Calls
// are synchronous and must return immediately; instruction fetches are
// always word aligned. Values are little endian, as on the GBA.
type Bus interface {
	Read32(addr uint32) uint32
	Read16(addr uint32) uint16
	Read8(addr uint32) uint8
	Write32(addr uint32, v uint32)
	Write16(addr uint32, v uint16)
	Write8(addr uint32, v uint8)
}

const pageShift = 12 // 4 KiB pages

// Memory is a sparse little-endian RAM implementing Bus, for tests and
// for callers that do not bring a full bus model. Pages are allocated
// on first touch; reads from untouched pages return zero.
type Memory struct {
	pages map[uint32]*[1 << pageShift]byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{pages: make(map[uint32]*[1 << pageShift]byte)}
}

func (m *Memory) page(addr uint32, allocate bool) *[1 << pageShift]byte {
	p, ok := m.pages[addr>>pageShift]
	if !ok && allocate {
		p = &[1 << pageShift]byte{}
		m.pages[addr>>pageShift] = p
	}
	return p
}

// Read8 returns the byte at addr.
func (m *Memory) Read8(addr uint32) uint8 {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr&(1<<pageShift-1)]
}

// Write8 sets the byte at addr.
func (m *Memory) Write8(addr uint32, v uint8) {
	m.page(addr, true)[addr&(1<<pageShift-1)] = v
}

// Read16 returns the halfword at addr.
func (m *Memory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Write16 sets the halfword at addr.
func (m *Memory) Write16(addr uint32, v uint16) {
	m.Write8(addr, uint8(v))
	m.Write8(addr+1, uint8(v>>8))
}

// Read32 returns the word at addr.
func (m *Memory) Read32(addr uint32) uint32 {
	return uint32(m.Read16(addr)) | uint32(m.Read16(addr+2))<<16
}

// Write32 sets the word at addr.
func (m *Memory) Write32(addr uint32, v uint32) {
	m.Write16(addr, uint16(v))
	m.Write16(addr+2, uint16(v>>16))
}

// Load copies a program image into memory starting at addr.
func (m *Memory) Load(addr uint32, data []byte) {
	for i, b := range data {
		m.Write8(addr+uint32(i), b)
	}
}

// LoadWords writes a sequence of instruction words starting at addr.
func (m *Memory) LoadWords(addr uint32, words []uint32) {
	for i, w := range words {
		m.Write32(addr+uint32(i)*4, w)
	}
}
