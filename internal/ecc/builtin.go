package ecc

import (
	"encoding/binary"
	"math/bits"
)

func init() {
	Register(New("parity", []string{
		"One even parity bit per data byte, appended as ceil(width/8) bytes",
	}, Parity))
	Register(New("hamming", []string{
		"Extended Hamming SEC-DED code over the data bits of a word",
		"A 8 byte word is encoded as the common 72/64 code with 1 check byte",
	}, Hamming))
	Register(NewAddressed("hamming-addr", []string{
		"Extended Hamming SEC-DED code over the data bits of a word and its 32 bit address",
		"The option \"address\" sets the address of the first word",
	}, HammingAddress))
}

// Parity appends one even parity bit per data byte, packed LSB first.
func Parity(data []byte, width int) []byte {
	check := make([]byte, (width+7)/8)
	for i := range width {
		if bits.OnesCount8(data[i])%2 == 1 {
			check[i/8] |= 1 << (i % 8)
		}
	}
	return appendCheck(data, width, check)
}

// Hamming appends an extended Hamming SEC-DED code of the data bits.
func Hamming(data []byte, width int) []byte {
	return appendCheck(data, width, secded(data[:width]))
}

// HammingAddress appends an extended Hamming SEC-DED code that covers the data
// bits followed by the little-endian 32 bit address of the word. Address bits
// above bit 31 are not covered.
func HammingAddress(data []byte, width int, address uint64) []byte {
	covered := make([]byte, width, width+4)
	copy(covered, data)
	covered = binary.LittleEndian.AppendUint32(covered, uint32(address))
	return appendCheck(data, width, secded(covered))
}

func appendCheck(data []byte, width int, check []byte) []byte {
	out := make([]byte, 0, width+len(check))
	out = append(out, data[:width]...)
	return append(out, check...)
}

// checkBitCount returns the number of Hamming check bits needed for m data bits.
func checkBitCount(m int) int {
	r := 0
	for 1<<r < m+r+1 {
		r++
	}
	return r
}

// secded computes r Hamming check bits and one overall parity bit over the
// data bits, packed LSB first. Data bit i is bit i%8 of byte i/8.
func secded(data []byte) []byte {
	m := 8 * len(data)
	r := checkBitCount(m)

	var syndrome uint
	var overall uint
	position := 1
	for i := range m {
		for position&(position-1) == 0 {
			position++ // skip check bit positions
		}
		if data[i/8]&(1<<(i%8)) != 0 {
			syndrome ^= uint(position)
			overall ^= 1
		}
		position++
	}

	check := make([]byte, (r+1+7)/8)
	for j := range r {
		if syndrome&(1<<j) != 0 {
			check[j/8] |= 1 << (j % 8)
			overall ^= 1
		}
	}
	if overall != 0 {
		check[r/8] |= 1 << (r % 8)
	}
	return check
}
