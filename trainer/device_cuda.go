//go:build cuda

package trainer

import "fmt"

import "gorgonia.org/cu"

func gpuName() (string, bool) {
	n, err := cu.NumDevices()
	if err != nil || n == 0 {
		return "", false
	}
	dev := cu.Device(0)
	name, err := dev.Name()
	if err != nil {
		return "", false
	}
	if mem, err := dev.TotalMem(); err == nil {
		name = fmt.Sprintf("%s (%d MiB)", name, mem>>20)
	}
	return name, true
}
