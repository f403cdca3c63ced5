package mpv

// Format identifies the layout of a value crossing the boundary.
type Format int

const (
	FormatString Format = iota
	FormatFlag
	FormatInt64
	FormatDouble
)

// Native tag values from enum mpv_format.
const (
	nativeFormatString = 1
	nativeFormatFlag   = 3
	nativeFormatInt64  = 4
	nativeFormatDouble = 5
)

// Native returns the mpv_format tag for f.
func (f Format) Native() int {
	switch f {
	case FormatString:
		return nativeFormatString
	case FormatFlag:
		return nativeFormatFlag
	case FormatInt64:
		return nativeFormatInt64
	case FormatDouble:
		return nativeFormatDouble
	default:
		panic("mpv: unknown format")
	}
}

func (f Format) String() string {
	switch f {
	case FormatString:
		return "string"
	case FormatFlag:
		return "flag"
	case FormatInt64:
		return "int64"
	case FormatDouble:
		return "double"
	default:
		return "unknown"
	}
}
