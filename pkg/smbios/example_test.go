package smbios_test

import (
	"fmt"

	"github.com/ssargent/dmidb/pkg/smbios"
)

// ExampleFromBytes decodes a one-structure table and reads its strings.
func ExampleFromBytes() {
	buf := []byte{0x01, 0x1A, 0x02, 0x00}
	buf = append(buf, make([]byte, 22)...)
	buf = append(buf, 'H', 'i', 0x00, 0x00)

	table := smbios.FromBytes(buf, &smbios.Version{Major: 3, Minor: 2})
	for it := table.Iterator(); it.Next(); {
		s := it.Structure()
		fmt.Println(s.Header)
		fmt.Println(s.Strings().Values())
	}

	// Output:
	// type 1 (System Information), length 26, handle 0x0002
	// [Hi]
}

// ExampleResolve follows a processor's cache reference.
func ExampleResolve() {
	cpu := make([]byte, 0x20)
	cpu[0], cpu[1], cpu[2], cpu[3] = 0x04, 0x20, 0x00, 0x04
	cpu[0x1A], cpu[0x1B] = 0x00, 0x07 // L1 cache handle 0x0700
	cpu[0x1C], cpu[0x1D] = 0xFF, 0xFF
	cpu[0x1E], cpu[0x1F] = 0xFF, 0xFF
	cpu = append(cpu, 0x00, 0x00)

	cache := []byte{0x07, 0x0B, 0x00, 0x07, 0x01, 0x80, 0x01, 0x00, 0x00, 0x20, 0x80}
	cache = append(cache, "L1 Cache"...)
	cache = append(cache, 0x00, 0x00)

	table := smbios.FromBytes(append(cpu, cache...), nil)

	proc, _ := smbios.First[smbios.ProcessorInformation](table)
	for _, h := range proc.CacheHandles() {
		c, ok := smbios.Resolve[smbios.CacheInformation](table, h)
		if !ok {
			continue
		}
		name, _ := c.SocketDesignation()
		size, _ := c.InstalledSize()
		fmt.Printf("%s: %d KiB\n", name, size>>10)
	}

	// Output:
	// L1 Cache: 2048 KiB
}
