package word

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		swap bool
		want string
	}{
		{name: "single byte", data: []byte{0x0a}, want: "0A"},
		{name: "little endian word", data: []byte{0x01, 0x02}, want: "0201"},
		{name: "buffer order", data: []byte{0x01, 0x02}, swap: true, want: "0102"},
		{name: "dword", data: []byte{0x00, 0x01, 0x02, 0x03}, want: "03020100"},
		{name: "upper case", data: []byte{0xab, 0xcd}, swap: true, want: "ABCD"},
		{name: "empty", data: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.data, tt.swap)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 2*len(tt.data), len(got))
		})
	}
}

func TestBinary(t *testing.T) {
	assert.Equal(t, "0000001000000001", Binary([]byte{0x01, 0x02}, false))
	assert.Equal(t, "0000000100000010", Binary([]byte{0x01, 0x02}, true))
	assert.Equal(t, "11111111", Binary([]byte{0xff}, false))
}

func TestDecode(t *testing.T) {
	data := []byte{0x10, 0x20, 0x30, 0x40}

	for _, swap := range []bool{false, true} {
		got, err := Decode(Hex(data, swap), swap)
		assert.NoError(t, err)
		assert.Equal(t, data, got)
	}

	_, err := Decode("XY", false)
	assert.Error(t, err)
}
