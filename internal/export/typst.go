// Package export renders an action chain as a Typst document and
// compiles it to a PDF via the typst binary.
package export

import (
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aticu/emdiro/internal/chain"
	"github.com/aticu/emdiro/internal/keycodes"
)

// ToPDF writes a PDF description of the chain to outPath. Reference
// images are embedded in the document.
func ToPDF(c *chain.Chain, keys *keycodes.Table, outPath string) error {
	dir, err := os.MkdirTemp("", "emdiro-export-*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer os.RemoveAll(dir)

	content, err := render(c, keys, dir)
	if err != nil {
		return err
	}

	docPath := filepath.Join(dir, "joined.typ")
	if err := os.WriteFile(docPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	output, err := exec.Command("typst", "compile", docPath, outPath).CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("export: typst compile failed: %w\n%s", err, output)
		}
		return fmt.Errorf("export: typst compile failed: %w", err)
	}
	return nil
}

// render produces the Typst markup for the chain, writing reference
// images as numbered PNG files into imgDir.
func render(c *chain.Chain, keys *keycodes.Table, imgDir string) (string, error) {
	var content strings.Builder
	imgIdx := 0

	for _, action := range c.Commands {
		switch a := action.(type) {
		case *chain.WaitForImage:
			name := fmt.Sprintf("%d.png", imgIdx)
			if err := writePNG(filepath.Join(imgDir, name), a); err != nil {
				return "", err
			}

			clause := ""
			if a.Click {
				clause = " and click on"
			}
			fmt.Fprintf(&content, "== wait for%s image at %s\n#image(%q)\n\n", clause, a.Location, name)
			imgIdx++
		case *chain.Sleep:
			fmt.Fprintf(&content, "== sleep for %s\n\n", a.Duration)
		case *chain.Shell:
			fmt.Fprintf(&content, "== run shell command\n```bash\n%s\n```\n\n", a.Command)
		case *chain.PressKeys:
			names := make([]string, 0, len(a.Keys))
			for _, code := range a.Keys {
				name, ok := keys.ReverseLookup(code)
				if !ok {
					name = "<unknown key>"
				}
				names = append(names, name)
			}
			fmt.Fprintf(&content, "== pressing keys\n%s\n\n", strings.Join(names, "\n"))
		case *chain.Type:
			fmt.Fprintf(&content, "== type text\n```text\n%s\n```\n\n", a.Text)
		case *chain.Click:
			fmt.Fprintf(&content, "== click at %s\n\n", a.Position)
		case *chain.MouseMove:
			fmt.Fprintf(&content, "== move mouse to %s\n\n", a.Position)
		}
	}

	return content.String(), nil
}

func writePNG(path string, a *chain.WaitForImage) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, a.Image); err != nil {
		return fmt.Errorf("export: encoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
