package input

// reverseKeyMap inverts a VK keyed table. Several VKs may share a native
// code (VK_SHIFT and VK_LSHIFT); the smallest VK wins so generic modifiers
// are preferred.
func reverseKeyMap[K comparable](m map[uint16]K) map[K]uint16 {
	out := make(map[K]uint16, len(m))
	for vk, code := range m {
		if cur, ok := out[code]; ok && cur < vk {
			continue
		}
		out[code] = vk
	}
	return out
}
