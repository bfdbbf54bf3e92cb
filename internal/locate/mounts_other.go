//go:build !linux

package locate

// SystemMounts returns only the filesystem root on platforms without a
// mount table reader.
func SystemMounts() ([]Mount, error) {
	return []Mount{{Name: "Computer", Icon: "drive-harddisk-symbolic", URI: "file:///"}}, nil
}
