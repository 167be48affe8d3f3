//go:build windows

package platform

func describe() Description {
	return fallbackDescription("Windows")
}
