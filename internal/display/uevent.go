package display

import "bytes"

// isDisplayUevent reports whether a kernel uevent datagram comes from the
// drm subsystem. The payload is a header ("change@/devices/...") followed
// by NUL separated KEY=VALUE pairs.
func isDisplayUevent(msg []byte) bool {
	fields := bytes.Split(msg, []byte{0})
	if len(fields) < 2 || !bytes.Contains(fields[0], []byte("@")) {
		return false
	}

	var action, subsystem []byte
	for _, f := range fields[1:] {
		if v, ok := bytes.CutPrefix(f, []byte("ACTION=")); ok {
			action = v
		} else if v, ok := bytes.CutPrefix(f, []byte("SUBSYSTEM=")); ok {
			subsystem = v
		}
	}

	if !bytes.Equal(subsystem, []byte("drm")) {
		return false
	}
	switch string(action) {
	case "change", "add", "remove":
		return true
	}
	return false
}
