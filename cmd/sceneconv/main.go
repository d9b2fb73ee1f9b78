// sceneconv converts an ASCII map into a scene YAML file.
//
// Every non-space rune becomes one static entity at its column/row:
// '#' is a hard wall, '.' a spectral floor tile drawn at altitude 0, and any
// other rune a soft object using the rune as its glyph.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/l1jgo/gridsim/internal/data"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: sceneconv <map.txt> <output.yaml>")
		os.Exit(1)
	}

	inFile, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer inFile.Close()

	scene, err := convert(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	raw, err := scene.Marshal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := os.Create(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "# Scene generated from %s (%d entries)\n", os.Args[1], scene.Count())
	if _, err := out.Write(raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d scene entries to %s\n", scene.Count(), os.Args[2])
}

func convert(r io.Reader) (*data.Scene, error) {
	floor := 0
	scene := &data.Scene{}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, len(buf))

	for y := 0; scanner.Scan(); y++ {
		x := 0
		for _, ch := range scanner.Text() {
			switch ch {
			case ' ', '\t', '\r':
			case '#':
				scene.Entries = append(scene.Entries, data.SceneEntry{
					Type: "Wall", Glyph: "#", Color: "white",
					X: float64(x), Y: float64(y), Solidness: "hard",
				})
			case '.':
				scene.Entries = append(scene.Entries, data.SceneEntry{
					Type: "Floor", Glyph: ".", Color: "blue",
					X: float64(x), Y: float64(y), Solidness: "spectral", Altitude: &floor,
				})
			default:
				scene.Entries = append(scene.Entries, data.SceneEntry{
					Type: "Object", Glyph: string(ch),
					X: float64(x), Y: float64(y), Solidness: "soft",
				})
			}
			x++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	return scene, nil
}
