package Go_Utils

import (
	"math/bits"
)

// NewBitArray allocates a bit array with room for at least size bits.
func NewBitArray(size uint) BitArray {
	return BitArray{bits: make([]uint, size/uint(bits.UintSize)+1)}
}

type BitArray struct {
	bits []uint
}

func (u BitArray) Len() int {
	return len(u.bits) * bits.UintSize
}

func (u BitArray) Get(i int) bool {
	return (u.bits[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

// Set marks bit i as occupied.
func (u BitArray) Set(i int) {
	u.bits[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

// Clr marks bit i as free.
func (u BitArray) Clr(i int) {
	u.bits[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// First returns the index of the lowest set bit, or -1 if none are set.
func (u BitArray) First() int {
	for word, v := range u.bits {
		if v != 0 {
			return word*bits.UintSize + bits.TrailingZeros(v)
		}
	}
	return -1
}
