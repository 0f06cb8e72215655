package document

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/phpdave11/gofpdf"
)

var pngOptions = gofpdf.ImageOptions{ImageType: "PNG"}

// Compose draws a laid-out document and returns the PDF bytes. Images must be PNG.
func Compose(doc *Document) ([]byte, error) {
	spec := doc.Spec
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: spec.Width, Ht: spec.Height},
	})
	pdf.SetMargins(spec.MarginLeft, spec.MarginTop, spec.MarginLeft)
	pdf.SetAutoPageBreak(false, spec.MarginBottom)
	pdf.SetFont(spec.FontFamily, "", spec.FontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	names := make([]string, 0, len(doc.Images))
	for name := range doc.Images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pdf.RegisterImageOptionsReader(name, pngOptions, bytes.NewReader(doc.Images[name]))
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case OpText:
				pdf.Text(op.X, op.Y, tr(op.Text))
			case OpImage:
				pdf.ImageOptions(op.Image, op.X, op.Y, op.W, op.H, false, pngOptions, 0, "")
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("compose pdf: %w", err)
	}
	return buf.Bytes(), nil
}
