package pyramid

// Status is the outcome of a load attempt. Each call to Load or LoadImage
// evaluates it from scratch.
type Status int

const (
	// Normal means the image and all levels were built.
	Normal Status = iota
	// LoadError means the source could not be decoded or was empty.
	LoadError
	// DepthError means the pixel format cannot be converted to NRGBA.
	DepthError
	// SizeError means the source exceeds the pixel-area or byte-size cap.
	SizeError
	// ReducedSize means an oversized source was replaced by a scaled copy.
	ReducedSize
)

// OK reports whether the status leaves an image loaded.
func (s Status) OK() bool {
	return s == Normal || s == ReducedSize
}

func (s Status) String() string {
	switch s {
	case Normal:
		return "normal"
	case LoadError:
		return "load error"
	case DepthError:
		return "depth error"
	case SizeError:
		return "size error"
	case ReducedSize:
		return "reduced size"
	default:
		return "unknown"
	}
}
