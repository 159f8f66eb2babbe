// Package state holds the pure scrolling and selection primitives shared by
// every panel. Nothing in here touches the terminal; callers feed sizes in
// and fold the results back into the model.
package state

// MaxScroll returns the largest valid offset for a buffer of n lines shown
// through a viewport of the given height.
func MaxScroll(n, height int) int {
	if height <= 0 {
		return 0
	}
	max := n - height
	if max < 0 {
		return 0
	}
	return max
}

// ClampOffset forces offset into [0, MaxScroll(n, height)].
func ClampOffset(offset, n, height int) int {
	if offset < 0 {
		return 0
	}
	if max := MaxScroll(n, height); offset > max {
		return max
	}
	return offset
}

// VisibleSlice returns exactly height lines starting at the clamped offset,
// right-padded with empty lines when the buffer runs out. Panels always
// render a fixed height.
func VisibleSlice(lines []string, height, offset int) []string {
	if height <= 0 {
		return nil
	}
	offset = ClampOffset(offset, len(lines), height)
	out := make([]string, 0, height)
	for i := offset; i < offset+height; i++ {
		if i < len(lines) {
			out = append(out, lines[i])
			continue
		}
		out = append(out, "")
	}
	return out
}

// EnsureVisible adjusts offset so the region [targetStart, targetStart+
// targetHeight) is inside the viewport: snap up when the target sits above,
// snap down when it sits below, leave alone otherwise. The result is always
// clamped, so calling it twice with the same arguments is a no-op.
func EnsureVisible(offset, height, targetStart, targetHeight, totalLines int) int {
	if height <= 0 {
		return 0
	}
	if targetHeight < 1 {
		targetHeight = 1
	}
	if targetStart < offset {
		offset = targetStart
	} else if targetStart+targetHeight > offset+height {
		offset = targetStart + targetHeight - height
	}
	return ClampOffset(offset, totalLines, height)
}

// ScrollBy moves offset by delta and clamps. Scrolling past either bound is
// idempotent.
func ScrollBy(offset, delta, n, height int) int {
	return ClampOffset(offset+delta, n, height)
}
