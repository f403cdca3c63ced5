package mpv

import "testing"

func TestFormatNative(t *testing.T) {
	formats := []Format{FormatString, FormatFlag, FormatInt64, FormatDouble}
	want := map[Format]int{
		FormatString: 1,
		FormatFlag:   3,
		FormatInt64:  4,
		FormatDouble: 5,
	}

	seen := make(map[int]Format)
	for _, f := range formats {
		tag := f.Native()
		if tag != want[f] {
			t.Errorf("%s.Native() = %d, want %d", f, tag, want[f])
		}
		if other, dup := seen[tag]; dup {
			t.Errorf("%s and %s share native tag %d", f, other, tag)
		}
		seen[tag] = f
		for i := 0; i < 3; i++ {
			if got := f.Native(); got != tag {
				t.Errorf("%s.Native() changed between calls: %d then %d", f, tag, got)
			}
		}
	}
}

func TestCodecFormats(t *testing.T) {
	tests := []struct {
		name string
		got  func() Format
		want Format
	}{
		{"Double", Double.Format, FormatDouble},
		{"Int64", Int64.Format, FormatInt64},
		{"Flag", Flag.Format, FormatFlag},
		{"String", String.Format, FormatString},
		{"NativeStr", NativeStr.Format, FormatString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := tt.got(); got != tt.want {
					t.Errorf("Format() = %s, want %s", got, tt.want)
				}
			}
		})
	}
}

func TestFormatUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Native() on an unknown format did not panic")
		}
	}()
	Format(42).Native()
}
