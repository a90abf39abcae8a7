//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

// vistaMajorVersion is the first Windows release with a low-integrity
// LocalLow folder for protected-mode plugins.
const vistaMajorVersion = 6

type windowsProvider struct {
	lowIntegrity bool
}

func newOSProvider() Provider {
	info := windows.RtlGetVersion()
	return &windowsProvider{lowIntegrity: info.MajorVersion >= vistaMajorVersion}
}

func (p *windowsProvider) PluginWritableDir() (string, error) {
	folder := windows.FOLDERID_LocalAppData
	if p.lowIntegrity {
		folder = windows.FOLDERID_LocalAppDataLow
	}
	path, err := windows.KnownFolderPath(folder, windows.KF_FLAG_CREATE)
	return nonEmpty("plugin writable dir", path, err)
}

func (p *windowsProvider) AppDataDir() (string, error) {
	path, err := windows.KnownFolderPath(windows.FOLDERID_LocalAppData, windows.KF_FLAG_CREATE)
	return nonEmpty("app data dir", path, err)
}
