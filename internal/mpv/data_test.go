package mpv

import (
	"errors"
	"math"
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewi-tim/mpvtui/internal/mpv/mpvtest"
)

func TestDoubleRoundTrip(t *testing.T) {
	m, _ := newTestMpv(t)

	values := []float64{0, -1, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1), math.NaN()}
	for _, v := range values {
		require.NoError(t, SetProperty(m, "speed", Double, v))
		got, err := GetProperty[float64](m, "speed", Double)
		require.NoError(t, err)
		if math.IsNaN(v) {
			assert.True(t, math.IsNaN(got), "NaN came back as %v", got)
			continue
		}
		assert.Equal(t, v, got)
	}
}

func TestInt64RoundTrip(t *testing.T) {
	m, _ := newTestMpv(t)

	for _, v := range []int64{0, -1, 1, math.MaxInt64, math.MinInt64} {
		require.NoError(t, m.SetInt64("playlist-pos", v))
		got, err := m.GetInt64("playlist-pos")
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestFlagRoundTrip(t *testing.T) {
	m, lib := newTestMpv(t)

	// The fake rejects any C int other than 0 or 1, so a bool written
	// without widening would fail or read neighbouring bytes.
	for _, v := range []bool{true, false, true, false} {
		require.NoError(t, m.SetFlag("pause", v))
		got, err := m.GetFlag("pause")
		require.NoError(t, err)
		assert.Equal(t, v, got)

		text, ok := lib.Property("pause")
		require.True(t, ok)
		if v {
			assert.Equal(t, "yes", text)
		} else {
			assert.Equal(t, "no", text)
		}
	}
}

func TestFlagWritesFullCInt(t *testing.T) {
	var seen []int32
	call := func(data unsafe.Pointer) error {
		seen = append(seen, *(*int32)(data))
		return nil
	}
	require.NoError(t, Flag.set(true, call))
	require.NoError(t, Flag.set(false, call))
	assert.Equal(t, []int32{1, 0}, seen)
}

func TestFlagReadsFullCInt(t *testing.T) {
	got, err := Flag.get(func(data unsafe.Pointer) error {
		// A non-zero value only in the high byte must still read as true.
		*(*int32)(data) = 1 << 24
		return nil
	}, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestStringRoundTrip(t *testing.T) {
	m, lib := newTestMpv(t)

	for _, v := range []string{"", "hello", "with space", "ünïcødé ✓", strings.Repeat("x", 4096)} {
		require.NoError(t, m.SetString("title", v))
		got, err := m.GetString("title")
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	assert.Zero(t, lib.LiveAllocations(), "GetString leaked native strings")
	assert.Zero(t, lib.BadFrees())
}

func TestStringWithNulFailsBeforeNativeCall(t *testing.T) {
	m, lib := newTestMpv(t)
	before := lib.TotalCalls()

	err := m.SetString("title", "bad\x00value")
	require.ErrorIs(t, err, ErrNull)
	assert.Equal(t, before, lib.TotalCalls(), "a native call was made")

	_, err = m.GetString("ti\x00tle")
	require.ErrorIs(t, err, ErrNull)
	assert.Equal(t, before, lib.TotalCalls(), "a native call was made")
}

func TestStringInvalidUTF8(t *testing.T) {
	m, lib := newTestMpv(t)
	lib.SetRawString("media-title", []byte{'a', 0xff, 0xfe, 'b'})

	_, err := m.GetString("media-title")
	require.ErrorIs(t, err, ErrInvalidUTF8)

	ns, err := GetProperty[*NativeString](m, "media-title", NativeStr)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Nil(t, ns)

	assert.Zero(t, lib.LiveAllocations(), "invalid string was not released")
	assert.Equal(t, 2, lib.Calls(mpvtest.CallFree))
}

func TestStringNullPointer(t *testing.T) {
	freed := 0
	free := func(unsafe.Pointer) { freed++ }
	_, err := String.get(func(data unsafe.Pointer) error {
		*(**byte)(data) = nil
		return nil
	}, free)
	require.ErrorIs(t, err, ErrNull)
	assert.Zero(t, freed)
}

func TestRawErrorShortCircuits(t *testing.T) {
	m, lib := newTestMpv(t)

	_, err := m.GetString("no-such-property")
	require.ErrorIs(t, err, ErrPropertyNotFound)

	var raw RawError
	require.ErrorAs(t, err, &raw)
	assert.Equal(t, -8, raw.Code())
	assert.Zero(t, lib.Calls(mpvtest.CallFree), "a failed read must not free anything")

	lib.SetDouble("volume", 50)
	_, err = m.GetFlag("volume")
	require.ErrorIs(t, err, ErrPropertyFormat)
}

func TestNativeStringReleasedOnce(t *testing.T) {
	m, lib := newTestMpv(t)
	lib.SetString("path", "/media/song.flac")

	ns, err := GetProperty[*NativeString](m, "path", NativeStr)
	require.NoError(t, err)
	assert.Equal(t, "/media/song.flac", ns.String())
	assert.Equal(t, []byte("/media/song.flac"), ns.Bytes())
	assert.Equal(t, len("/media/song.flac"), ns.Len())
	assert.Equal(t, 1, lib.LiveAllocations())
	assert.Zero(t, lib.Calls(mpvtest.CallFree))

	require.NoError(t, ns.Close())
	require.NoError(t, ns.Close())
	assert.Equal(t, 1, lib.Calls(mpvtest.CallFree))
	assert.Zero(t, lib.LiveAllocations())
	assert.Zero(t, lib.BadFrees())
	assert.Empty(t, ns.String())
	assert.Nil(t, ns.Bytes())
}

func TestNativeStringEarlyReturn(t *testing.T) {
	m, lib := newTestMpv(t)
	lib.SetString("path", "/media/a.mkv")

	read := func() error {
		ns, err := GetProperty[*NativeString](m, "path", NativeStr)
		if err != nil {
			return err
		}
		defer ns.Close()
		if strings.HasSuffix(ns.String(), ".mkv") {
			return errors.New("early")
		}
		return nil
	}

	require.EqualError(t, read(), "early")
	assert.Equal(t, 1, lib.Calls(mpvtest.CallFree))
	assert.Zero(t, lib.LiveAllocations())
}

func TestNativeStringViewOutlivesWrapper(t *testing.T) {
	m, lib := newTestMpv(t)
	lib.SetString("path", "/media/song.flac")

	view := func() string {
		ns, err := GetProperty[*NativeString](m, "path", NativeStr)
		require.NoError(t, err)
		return ns.String()
	}
	s := view()
	for range 5 {
		runtime.GC()
	}

	assert.Zero(t, lib.Calls(mpvtest.CallFree))
	assert.Equal(t, 1, lib.LiveAllocations())
	assert.Equal(t, "/media/song.flac", s)
}
