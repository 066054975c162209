// Command assetctl inspects asset configuration and files.
//
//	assetctl classify image/png video/mp4 ./report.pdf
//	assetctl types
//	assetctl config --backend s3 --config assets.yaml
//	assetctl styles
//	assetctl probe ./photo.jpg
//	assetctl migrate
//	assetctl health
//
// Settings come from ASSETS_* environment variables, overlaid by the YAML
// file given with --config. Output is YAML.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
