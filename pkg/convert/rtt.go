package convert

import (
	"fmt"
	"path/filepath"

	"github.com/JMcKiern/warhawk-reversing/pkg/rtt"
)

// RTTFile converts one RTT file to <name>.dds.
func RTTFile(path string, opts ...Option) Result {
	return newOptions(opts).rttFile(path)
}

// RTTFiles converts every RTT file found under paths. See FindFiles. A path
// that cannot be read or walked becomes a failed Result.
func RTTFiles(paths []string, opts ...Option) []Result {
	o := newOptions(opts)

	var results []Result
	for _, p := range paths {
		files, err := FindFiles([]string{p}, ExtRTT)
		if err != nil {
			res := Result{Input: p}
			res.fail(err)
			o.printf("Processing %s", p)
			o.done(&res)
			results = append(results, res)
			continue
		}
		for _, f := range files {
			results = append(results, o.rttFile(f))
		}
	}
	return results
}

func (o *options) rttFile(path string) Result {
	res := Result{Input: path}
	o.printf("Processing %s", path)
	defer o.done(&res)

	data, err := o.read(path)
	if err != nil {
		res.fail(fmt.Errorf("read: %w", err))
		return res
	}

	out := o.outputPath(filepath.Dir(path), outputName(path, ExtDDS))
	o.decodeRTT(&res, data, out)
	return res
}

// decodeRTT converts data in place and writes the DDS, plus a preview when
// enabled. Failures are recorded on res.
func (o *options) decodeRTT(res *Result, data []byte, ddsPath string) bool {
	decoded, err := rtt.Decode(data, rtt.WithPermissive(o.permissive))
	if err != nil {
		res.fail(err)
		return false
	}
	res.warn(decoded.Warnings)
	for _, w := range decoded.Warnings {
		o.printf(" - %s", w.Reason)
	}

	written, err := o.write(ddsPath, decoded.DDS)
	if err != nil {
		res.fail(err)
		return false
	}
	res.Outputs = append(res.Outputs, written)

	img, err := o.writePreview(ddsPath, decoded.DDS)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("preview: %v", err))
	} else if img != "" {
		res.Outputs = append(res.Outputs, img)
	}
	return true
}

func (o *options) done(res *Result) {
	if res.OK() {
		o.printf(" - Done\n")
	} else {
		o.printf(" - Error: %s\n", res.Error)
	}
}
