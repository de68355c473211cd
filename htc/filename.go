package htc

import (
	"path/filepath"
	"time"

	"github.com/aquariumbio/aquarium-opil/export"
)

// DefaultFileName is the output name without extension.
const DefaultFileName = "jellyfish_htc"

// OutputPath returns dir/name[_YYYYMMDD].<ext> with the extension of format.
func OutputPath(dir, name string, format export.Format, dated bool, now time.Time) string {
	if name == "" {
		name = DefaultFileName
	}
	if dated {
		name += "_" + now.Format("20060102")
	}
	ext := ".ttl"
	if info, ok := export.GetFormatInfo(format); ok {
		ext = info.Extension
	}
	return filepath.Join(dir, name+ext)
}
