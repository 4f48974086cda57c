package pathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FileRole(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Descriptor
	}{
		{"absolute", "/outbox/report_*.txt", Descriptor{Dir: "/outbox", Name: "report_*.txt"}},
		{"nested", "/u03/upload/home/finance/report.txt", Descriptor{Dir: "/u03/upload/home/finance", Name: "report.txt"}},
		{"no separator", "report.txt", Descriptor{Dir: ".", Name: "report.txt"}},
		{"root file", "/out.txt", Descriptor{Dir: "/", Name: "out.txt"}},
		{"backslashes", "C:\\temp\\out.txt", Descriptor{Dir: "C:/temp", Name: "out.txt"}},
		{"trailing separator", "/inbox/", Descriptor{Dir: "/inbox", Name: ""}},
		{"relative", "inbox/*.csv", Descriptor{Dir: "inbox", Name: "*.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.raw, RoleFile))
		})
	}
}

func TestResolve_DirectoryRole(t *testing.T) {
	assert.Equal(t, Descriptor{Dir: "/data/incoming"}, Resolve("/data/incoming", RoleDirectory))
	assert.Equal(t, Descriptor{Dir: "/data/incoming"}, Resolve("\\data\\incoming\\", RoleDirectory))
	assert.Equal(t, Descriptor{Dir: "data"}, Resolve("data", RoleDirectory))
}

func TestResolve_PureAndIdempotent(t *testing.T) {
	raws := []string{
		"/outbox/report_*.txt",
		"report.txt",
		"C:\\temp\\out.txt",
		"/a/b/c/d.csv",
	}

	for _, raw := range raws {
		first := Resolve(raw, RoleFile)
		// Same input, same output.
		assert.Equal(t, first, Resolve(raw, RoleFile))
		// Re-resolving the joined output yields the same descriptor.
		assert.Equal(t, first, Resolve(first.Path(), RoleFile), "raw=%s", raw)
	}
}

func TestResolveNetworked(t *testing.T) {
	d := ResolveNetworked("data$/reports/q1/*.txt", RoleFile)
	assert.Equal(t, "data$", d.Share)
	assert.Equal(t, "reports/q1", d.Dir)
	assert.Equal(t, "*.txt", d.Name)

	d = ResolveNetworked("\\\\upload\\in\\file.csv", RoleFile)
	assert.Equal(t, "upload", d.Share)
	assert.Equal(t, "in", d.Dir)
	assert.Equal(t, "file.csv", d.Name)

	// File directly under the share root.
	d = ResolveNetworked("upload/file.csv", RoleFile)
	assert.Equal(t, "upload", d.Share)
	assert.Equal(t, ".", d.Dir)
	assert.Equal(t, "file.csv", d.Name)

	// Bare share name.
	d = ResolveNetworked("upload", RoleFile)
	assert.Equal(t, "upload", d.Share)
	assert.Equal(t, ".", d.Dir)
	assert.Equal(t, "", d.Name)
}

func TestIsPattern(t *testing.T) {
	assert.True(t, Descriptor{Name: "report_*.txt"}.IsPattern())
	assert.True(t, Descriptor{Name: "data?.csv"}.IsPattern())
	assert.False(t, Descriptor{Name: "report.txt"}.IsPattern())
	assert.False(t, Descriptor{Name: ""}.IsPattern())
}
