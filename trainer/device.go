package trainer

import "fmt"
import "strings"

import "github.com/klauspost/cpuid/v2"

// Device describes where the graphs execute. Gorgonia graphs here run on the
// CPU; a visible CUDA device is reported alongside when built with the cuda tag.
func Device() string {
	cpu := fmt.Sprintf("cpu (%s, %d logical cores, %s)", cpuid.CPU.BrandName, cpuid.CPU.LogicalCores, cpuFeatures())
	if name, ok := gpuName(); ok {
		return cpu + ", cuda device " + name + " visible"
	}
	return cpu
}

func cpuFeatures() string {
	var out []string
	for _, f := range []cpuid.FeatureID{cpuid.AVX, cpuid.AVX2, cpuid.FMA3, cpuid.AVX512F, cpuid.ASIMD} {
		if cpuid.CPU.Supports(f) {
			out = append(out, f.String())
		}
	}
	if len(out) == 0 {
		return "no vector extensions"
	}
	return strings.Join(out, " ")
}
