package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarolak/hostprobe/pkg/platform"
)

func TestMemoryInfo_Windows(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"wmic OS get FreePhysicalMemory,TotalVisibleMemorySize /Value": "\r\nFreePhysicalMemory=1024\r\nTotalVisibleMemorySize=2048\r\n",
	}}

	total, free := memoryInfo(context.Background(), src, platform.Windows, testOptions())
	require.NotNil(t, total)
	require.NotNil(t, free)
	assert.Equal(t, uint64(2048*1024), *total, "wmic reports kibibytes")
	assert.Equal(t, uint64(1024*1024), *free)
}

func TestMemoryInfo_WindowsUnparseable(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"wmic OS get FreePhysicalMemory,TotalVisibleMemorySize /Value": "FreePhysicalMemory=oops\nTotalVisibleMemorySize=2048\n",
	}}

	total, free := memoryInfo(context.Background(), src, platform.Windows, testOptions())
	require.NotNil(t, total)
	assert.Equal(t, uint64(2048*1024), *total)
	assert.Nil(t, free, "an unparseable field reads as unknown")
}

const freeOutput = `              total        used        free      shared  buff/cache   available
Mem:     8254390272  3456789012  1234567890      123456  3563033370  4456789012
Swap:    2147479552           0  2147479552
`

func TestMemoryInfo_LinuxFree(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{"free -b": freeOutput}}

	total, free := memoryInfo(context.Background(), src, platform.Linux, testOptions())
	require.NotNil(t, total)
	require.NotNil(t, free)
	assert.Equal(t, uint64(8254390272), *total)
	assert.Equal(t, uint64(1234567890), *free)
}

func TestMemoryInfo_MeminfoOnlyWhenFreeProducedNothing(t *testing.T) {
	meminfo := "MemTotal:        8060928 kB\nMemFree:         1205604 kB\nBuffers:          123456 kB\n"

	src := &fakeSource{
		outputs: map[string]string{},
		files:   map[string]string{meminfoPath: meminfo},
	}
	total, free := memoryInfo(context.Background(), src, platform.Linux, testOptions())
	require.NotNil(t, total)
	require.NotNil(t, free)
	assert.Equal(t, uint64(8060928*1024), *total)
	assert.Equal(t, uint64(1205604*1024), *free)

	// free produced output without a Mem: row; the fallback must not engage
	src = &fakeSource{
		outputs: map[string]string{"free -b": "garbage\n"},
		files:   map[string]string{meminfoPath: meminfo},
	}
	total, free = memoryInfo(context.Background(), src, platform.Linux, testOptions())
	assert.Nil(t, total)
	assert.Nil(t, free)
}

const vmStatOutput = `Mach Virtual Memory Statistics: (page size of 16384 bytes)
Pages free:                               12345.
Pages active:                             99999.
`

func TestMemoryInfo_Darwin(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"sysctl -n hw.memsize": "17179869184",
		"vm_stat":              vmStatOutput,
	}}

	total, free := memoryInfo(context.Background(), src, platform.Darwin, testOptions())
	require.NotNil(t, total)
	require.NotNil(t, free)
	assert.Equal(t, uint64(17179869184), *total)
	assert.Equal(t, uint64(12345*16384), *free, "page size comes from the vm_stat banner")
}

func TestMemoryInfo_DarwinDefaults(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"sysctl -n hw.memsize": "hw.memsize: 17179869184",
		"vm_stat":              "Pages free:    10.\n",
	}}

	total, free := memoryInfo(context.Background(), src, platform.Darwin, testOptions())
	assert.Nil(t, total, "non-numeric sysctl output is rejected")
	require.NotNil(t, free)
	assert.Equal(t, uint64(10*4096), *free, "missing banner falls back to the 4096-byte page")
}

func TestCollectHardware_FreeAboveTotalDropped(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"sysctl -n hw.memsize": "1000",
		"vm_stat":              "Mach Virtual Memory Statistics: (page size of 4096 bytes)\nPages free:    10.\n",
	}}

	hw := collectHardware(context.Background(), src, platform.Darwin, testOptions())
	require.NotNil(t, hw.MemoryTotalBytes)
	assert.Equal(t, uint64(1000), *hw.MemoryTotalBytes)
	assert.Nil(t, hw.MemoryFreeBytes, "free above total means one source lied")
}

const dfOutput = `Filesystem       1-blocks       Used   Available Capacity Mounted on
/dev/sda2     105089261568 8573780992 91135066112       9% /
tmpfs           4124479488          0  4124479488       0% /dev/shm
corrupt row
`

func TestParseDF(t *testing.T) {
	volumes := parseDF(dfOutput)
	require.Len(t, volumes, 2, "a row with fewer than 6 fields is discarded whole")

	root := volumes[0]
	assert.Equal(t, "/", root.Name)
	require.NotNil(t, root.Filesystem)
	assert.Equal(t, "/dev/sda2", *root.Filesystem)
	require.NotNil(t, root.Total)
	assert.Equal(t, uint64(105089261568), *root.Total)
	require.NotNil(t, root.Used)
	assert.Equal(t, uint64(8573780992), *root.Used)
	require.NotNil(t, root.Free)
	assert.Equal(t, uint64(91135066112), *root.Free)

	assert.Equal(t, "/dev/shm", volumes[1].Name)
}

func TestParseDF_Empty(t *testing.T) {
	assert.Empty(t, parseDF(""))
	assert.NotNil(t, parseDF(""))
}

const logicalDiskCSV = `Node,Caption,FileSystem,FreeSpace,Size

DESKTOP-1,C:,NTFS,421234567168,511229325312
DESKTOP-1,D:,,
DESKTOP-1,E:,FAT32,oops,1000
`

func TestParseLogicalDiskCSV(t *testing.T) {
	volumes := parseLogicalDiskCSV(logicalDiskCSV)
	require.Len(t, volumes, 2, "the short D: row is skipped")

	c := volumes[0]
	assert.Equal(t, "C:", c.Name)
	require.NotNil(t, c.Filesystem)
	assert.Equal(t, "NTFS", *c.Filesystem)
	require.NotNil(t, c.Total)
	assert.Equal(t, uint64(511229325312), *c.Total)
	require.NotNil(t, c.Free)
	assert.Equal(t, uint64(421234567168), *c.Free)
	require.NotNil(t, c.Used)
	assert.Equal(t, uint64(511229325312-421234567168), *c.Used)

	e := volumes[1]
	assert.Equal(t, "E:", e.Name)
	assert.Nil(t, e.Free, "unparseable free space reads as unknown")
	require.NotNil(t, e.Total)
	assert.Equal(t, uint64(1000), *e.Total)
	assert.Nil(t, e.Used, "used is derived only when both ends parsed")
}

func TestVendorModel_Windows(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"wmic computersystem get manufacturer,model /Value": "\r\nManufacturer=Dell Inc.\r\nModel=XPS 15 9520\r\n",
	}}

	manufacturer, mdl := vendorModel(context.Background(), src, platform.Windows)
	require.NotNil(t, manufacturer)
	assert.Equal(t, "Dell Inc.", *manufacturer)
	require.NotNil(t, mdl)
	assert.Equal(t, "XPS 15 9520", *mdl)
}

func TestVendorModel_Linux(t *testing.T) {
	src := &fakeSource{files: map[string]string{
		dmiVendorPath:  "LENOVO",
		dmiProductPath: "20Y7003AGE",
	}}

	manufacturer, mdl := vendorModel(context.Background(), src, platform.Linux)
	require.NotNil(t, manufacturer)
	assert.Equal(t, "LENOVO", *manufacturer)
	require.NotNil(t, mdl)
	assert.Equal(t, "20Y7003AGE", *mdl)

	manufacturer, mdl = vendorModel(context.Background(), src, platform.OtherPOSIX)
	assert.NotNil(t, manufacturer, "other POSIX systems use the same descriptor files")
	assert.NotNil(t, mdl)
}

const profilerOutput = `Hardware:

    Hardware Overview:

      Model Name: MacBook Pro
      Model Identifier: MacBookPro18,3
      Chip: Apple M1 Pro
`

func TestVendorModel_Darwin(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"system_profiler SPHardwareDataType": profilerOutput,
	}}

	manufacturer, mdl := vendorModel(context.Background(), src, platform.Darwin)
	assert.Nil(t, manufacturer, "system_profiler reports no manufacturer on Apple hardware")
	require.NotNil(t, mdl)
	assert.Equal(t, "MacBook Pro", *mdl, "the model name beats the identifier")
}

func TestVendorModel_DarwinIdentifierFallback(t *testing.T) {
	src := &fakeSource{outputs: map[string]string{
		"system_profiler SPHardwareDataType": "      Model Identifier: MacBookPro18,3\n",
	}}

	_, mdl := vendorModel(context.Background(), src, platform.Darwin)
	require.NotNil(t, mdl)
	assert.Equal(t, "MacBookPro18,3", *mdl)
}

func TestCPUDescription(t *testing.T) {
	t.Run("windows wmic", func(t *testing.T) {
		src := &fakeSource{outputs: map[string]string{
			"wmic cpu get Name /Value": "\r\nName=Intel(R) Core(TM) i7-12700H\r\n",
		}}
		cpu := cpuDescription(context.Background(), src, platform.Windows)
		require.NotNil(t, cpu)
		assert.Equal(t, "Intel(R) Core(TM) i7-12700H", *cpu)
	})

	t.Run("darwin sysctl", func(t *testing.T) {
		src := &fakeSource{outputs: map[string]string{
			"sysctl -n machdep.cpu.brand_string": "Apple M1 Pro",
		}}
		cpu := cpuDescription(context.Background(), src, platform.Darwin)
		require.NotNil(t, cpu)
		assert.Equal(t, "Apple M1 Pro", *cpu)
	})

	t.Run("linux cpuinfo", func(t *testing.T) {
		src := &fakeSource{files: map[string]string{
			cpuinfoPath: "processor\t: 0\nmodel name\t: AMD Ryzen 7 5800X\nflags\t: fpu vme\n",
		}}
		cpu := cpuDescription(context.Background(), src, platform.Linux)
		require.NotNil(t, cpu)
		assert.Equal(t, "AMD Ryzen 7 5800X", *cpu)
	})

	t.Run("linux lscpu fallback", func(t *testing.T) {
		src := &fakeSource{outputs: map[string]string{
			"lscpu": "Architecture:        x86_64\nModel name:          Intel(R) Xeon(R) Silver 4314\n",
		}}
		cpu := cpuDescription(context.Background(), src, platform.Linux)
		require.NotNil(t, cpu)
		assert.Equal(t, "Intel(R) Xeon(R) Silver 4314", *cpu)
	})

	t.Run("nothing available", func(t *testing.T) {
		src := &fakeSource{}
		assert.Nil(t, cpuDescription(context.Background(), src, platform.Linux))
	})
}

func TestParseUint(t *testing.T) {
	v := parseUint(" 42 ")
	require.NotNil(t, v)
	assert.Equal(t, uint64(42), *v)

	assert.Nil(t, parseUint("oops"))
	assert.Nil(t, parseUint(""))
	assert.Nil(t, parseUint("-1"))
}
