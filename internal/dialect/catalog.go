package dialect

import (
	"fmt"

	"github.com/retroenv/bin2hex/internal/options"
	"github.com/retroenv/retrogolib/set"
)

var allOptions = []options.Option{
	options.Address,
	options.Alignment,
	options.ECC,
	options.ECCSkipAllOnes,
	options.ECCSkipAllZeros,
	options.PadCount,
	options.PadByte,
	options.SwapEndian,
}

var memoryWidths = []int{1, 2, 4, 8, 16}

const addressedAlignment = 32

var (
	catalog = map[string]*Dialect{}
	ordered []*Dialect
)

func init() {
	for _, width := range []int{1, 2, 4, 8} {
		add(&Dialect{
			Name:      fmt.Sprintf("c_uint%d", 8*width),
			Width:     width,
			Alignment: 16,
			Policy:    CArray,
			Summary:   fmt.Sprintf("C initializer values for an 'uint%d_t' table", 8*width),
			options:   optionSet(options.Alignment, options.SwapEndian),
		})
	}

	for _, width := range memoryWidths {
		vhex := &Dialect{
			Name:      fmt.Sprintf("vhex_dw%d", width),
			Width:     width,
			Alignment: width,
			Policy:    Sequence,
			Summary:   fmt.Sprintf("$readmemh file for a memory with %d-byte (%d-bit) width", width, 8*width),
			options:   optionSet(allOptions...),
		}
		add(vhex)
		add(alias(vhex, fmt.Sprintf("verilog_dw%d", width)))
	}

	for _, width := range memoryWidths {
		vhex := &Dialect{
			Name:      fmt.Sprintf("vhex_addr_dw%d", width),
			Width:     width,
			Alignment: addressedAlignment,
			Policy:    Addressed,
			Summary:   fmt.Sprintf("$readmemh file with address tags for a memory with %d-byte (%d-bit) width", width, 8*width),
			options:   optionSet(options.Address, options.Alignment, options.SwapEndian),
		}
		add(vhex)
		add(alias(vhex, fmt.Sprintf("verilog_addr_dw%d", width)))
	}

	for _, width := range memoryWidths {
		add(&Dialect{
			Name:      fmt.Sprintf("vbin_dw%d", width),
			Width:     width,
			Alignment: width,
			Policy:    SequenceBinary,
			Summary:   fmt.Sprintf("$readmemb file for a memory with %d-byte (%d-bit) width", width, 8*width),
			options:   optionSet(allOptions...),
		})
	}

	add(&Dialect{
		Name:      "denali",
		Width:     1,
		Alignment: 1,
		Policy:    Denali,
		Summary:   "Cadence Denali memory model listing, one byte per line",
		options:   optionSet(),
	})
}

func add(d *Dialect) {
	if _, ok := catalog[d.Name]; ok {
		panic(fmt.Sprintf("dialect '%s' defined twice", d.Name))
	}
	catalog[d.Name] = d
	ordered = append(ordered, d)
}

func alias(d *Dialect, name string) *Dialect {
	a := *d
	a.Name = name
	a.AliasOf = d.Name
	a.Summary = fmt.Sprintf("Alias name of '%s'", d.Name)
	return &a
}

func optionSet(opts ...options.Option) set.Set[options.Option] {
	s := set.New[options.Option]()
	for _, option := range opts {
		s.Add(option)
	}
	return s
}
