package state

import "github.com/wazerojit/x86emit/operand"

// MemFind reports the memory cache entry tracking address, if any. The
// match is by address identity (size, base, index, displacement) only,
// ignoring Multiplier.
func (c *Context) MemFind(address operand.Ptr) (int, bool) {
	for i := range c.memCache {
		e := &c.memCache[i]
		if e.valid && addrEqual(e.address, address) {
			return i, true
		}
	}
	return 0, false
}

// MemWrite records that address now holds value. A hit promotes the entry
// one slot toward the front of the cache (a cheap recency approximation,
// not a full LRU) and overwrites its value; a miss inserts a fresh entry,
// growing the cache until it reaches capacity and then wrapping new
// insertions to the middle slot so the front half, which is hit more
// often, survives longer.
func (c *Context) MemWrite(address operand.Ptr, value operand.Operand) {
	if index, ok := c.MemFind(address); ok {
		c.MemUpdate(index)
		if index != 0 {
			c.memCache[index-1].value = value
		} else {
			c.memCache[0].value = value
		}
		return
	}

	size := len(c.memCache)
	newIndex := c.memCacheEntries
	if newIndex >= size {
		newIndex = size >> 1
	}
	if c.memCacheEntries < size {
		c.memCacheEntries++
	} else {
		c.memCacheEntries = size >> 1
	}
	c.memCache[newIndex] = memEntry{address: address, value: value, valid: true}
}

// MemUpdate moves the entry at index one slot toward the front, swapping it
// with its predecessor. index 0 is already the front and is left alone.
func (c *Context) MemUpdate(index int) {
	if index != 0 {
		c.memCache[index-1], c.memCache[index] = c.memCache[index], c.memCache[index-1]
	}
}

func addrEqual(a, b operand.Ptr) bool {
	return a.Size == b.Size && a.Base == b.Base && a.Index == b.Index && a.Displacement == b.Displacement
}
