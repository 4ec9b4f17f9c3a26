// shortsfx renders vertical dance shorts from scene instructions:
// trimmed clips stitched with dissolves, beat-timed text overlays, and
// a 1080x1920 H.264 export.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
