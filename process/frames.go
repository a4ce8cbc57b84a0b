// Package process runs the two delivery pipelines: sampled video frames
// stamped with drifting timestamps, and uploaded photo batches with
// group-aware assignments. Both end in a ZIP ready for download.
package process

// FrameSource is the black-box decoder abstraction. The core never
// touches video bytes; it only asks for raw images at chosen positions.
type FrameSource interface {
	TotalFrames() int
	Frame(index int) ([]byte, error)
}

// ByteFrames adapts an already-decoded sequence of images, such as
// frames posted alongside an upload request.
type ByteFrames [][]byte

func (b ByteFrames) TotalFrames() int { return len(b) }

func (b ByteFrames) Frame(index int) ([]byte, error) {
	return b[index], nil
}

// FramePositions picks n evenly spaced frame indices across [0, total),
// first and last frame always included when n > 1. Fractional positions
// truncate toward zero.
func FramePositions(total, n int) []int {
	if total <= 0 || n <= 0 {
		return nil
	}
	if n > total {
		n = total
	}
	if n == 1 {
		return []int{0}
	}

	step := float64(total-1) / float64(n-1)
	positions := make([]int, n)
	for i := range positions {
		positions[i] = int(float64(i) * step)
	}
	return positions
}
