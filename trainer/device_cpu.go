//go:build !cuda

package trainer

func gpuName() (string, bool) {
	return "", false
}
