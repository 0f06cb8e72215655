package document

import (
	"strings"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/format"
)

// PageSpec fixes the geometry of the contract layout, in points.
type PageSpec struct {
	Width, Height float64
	MarginTop     float64
	MarginBottom  float64
	MarginLeft    float64

	FontFamily string
	FontSize   float64
	LineHeight float64
	WrapWidth  int

	SignatureX      float64
	SignatureWidth  float64
	SignatureHeight float64
	SignatureGap    float64
}

func DefaultPageSpec() PageSpec {
	return PageSpec{
		Width:           595.28,
		Height:          841.89,
		MarginTop:       60,
		MarginBottom:    50,
		MarginLeft:      50,
		FontFamily:      "Helvetica",
		FontSize:        10,
		LineHeight:      14,
		WrapWidth:       95,
		SignatureX:      50,
		SignatureWidth:  150,
		SignatureHeight: 50,
		SignatureGap:    10,
	}
}

type OpKind int

const (
	OpText OpKind = iota
	OpImage
)

// Op is one drawing instruction. Text ops are positioned by baseline, image
// ops by their top-left corner.
type Op struct {
	Kind  OpKind
	X, Y  float64
	Text  string
	Image string
	W, H  float64
}

type Page struct {
	Ops []Op
}

// Document is a laid-out contract ready to be drawn.
type Document struct {
	Spec   PageSpec
	Pages  []*Page
	Images map[string][]byte
}

// Lines returns the text drawn on every page, in order.
func (d *Document) Lines() []string {
	var out []string
	for _, p := range d.Pages {
		for _, op := range p.Ops {
			if op.Kind == OpText {
				out = append(out, op.Text)
			}
		}
	}
	return out
}

// Signature is an image to draw in place of a signature marker. SignedAt is
// the upload time printed under the tenant signature; zero means unknown.
type Signature struct {
	Image    []byte
	SignedAt time.Time
}

// Signatures maps a signature marker to its image. Markers without an entry
// are skipped by the layout.
type Signatures map[string]Signature

type LayoutOptions struct {
	Spec        PageSpec
	RulesMarker string
	Now         func() time.Time
}

const signedCaption = "Signed digitally on "

// SplitRules separates the main contract from the rules section, which starts
// at the first occurrence of marker and keeps it.
func SplitRules(text, marker string) (main, rules string) {
	if marker == "" {
		return text, ""
	}
	i := strings.Index(text, marker)
	if i < 0 {
		return text, ""
	}
	return text[:i], text[i:]
}

type layouter struct {
	spec  PageSpec
	now   func() time.Time
	doc   *Document
	page  *Page
	y     float64
	names map[string]string
}

// Layout paginates rendered contract text. Signature markers are replaced by
// their images; a rules section, if present, starts on a new page.
func Layout(text string, sigs Signatures, opts LayoutOptions) *Document {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	l := &layouter{
		spec:  opts.Spec,
		now:   opts.Now,
		doc:   &Document{Spec: opts.Spec, Images: map[string][]byte{}},
		names: map[string]string{},
	}
	l.newPage()

	main, rules := SplitRules(text, opts.RulesMarker)
	l.section(main, sigs, true)
	if rules != "" {
		if len(l.page.Ops) > 0 {
			l.newPage()
		}
		l.section(rules, nil, false)
	}
	return l.doc
}

func (l *layouter) newPage() {
	l.page = &Page{}
	l.doc.Pages = append(l.doc.Pages, l.page)
	l.y = l.spec.MarginTop
}

func (l *layouter) bottom() float64 {
	return l.spec.Height - l.spec.MarginBottom
}

func (l *layouter) section(text string, sigs Signatures, markers bool) {
	for _, para := range Paragraphs(text) {
		for _, line := range WrapText(para, l.spec.WrapWidth) {
			if markers && contract.IsSignatureMarker(line) {
				l.signature(strings.TrimSpace(line), sigs)
				continue
			}
			l.line(line)
		}
	}
}

// line draws one wrapped line. Blank lines only advance the cursor and never
// open a page on their own.
func (l *layouter) line(text string) {
	if text == "" {
		l.y += l.spec.LineHeight
		return
	}
	if l.y > l.bottom() {
		l.newPage()
	}
	l.page.Ops = append(l.page.Ops, Op{Kind: OpText, X: l.spec.MarginLeft, Y: l.y, Text: text})
	l.y += l.spec.LineHeight
}

func (l *layouter) signature(marker string, sigs Signatures) {
	sig, ok := sigs[marker]
	if !ok || len(sig.Image) == 0 {
		return
	}
	withCaption := marker == contract.TenantSignatureMarker

	need := l.spec.SignatureHeight + l.spec.SignatureGap
	if withCaption {
		need += l.spec.LineHeight
	}
	top := l.y - l.spec.FontSize
	if top+need > l.bottom() {
		l.newPage()
		top = l.y - l.spec.FontSize
	}

	name := l.imageName(marker, sig.Image)
	l.page.Ops = append(l.page.Ops, Op{
		Kind:  OpImage,
		X:     l.spec.SignatureX,
		Y:     top,
		Image: name,
		W:     l.spec.SignatureWidth,
		H:     l.spec.SignatureHeight,
	})
	l.y = top + l.spec.SignatureHeight + l.spec.FontSize

	if withCaption {
		signedAt := sig.SignedAt
		if signedAt.IsZero() {
			signedAt = l.now()
		}
		l.page.Ops = append(l.page.Ops, Op{
			Kind: OpText,
			X:    l.spec.SignatureX,
			Y:    l.y,
			Text: signedCaption + format.Date(signedAt),
		})
		l.y += l.spec.LineHeight
	}
	l.y += l.spec.SignatureGap
}

func (l *layouter) imageName(marker string, data []byte) string {
	if name, ok := l.names[marker]; ok {
		return name
	}
	name := strings.Trim(marker, "{}")
	l.names[marker] = name
	l.doc.Images[name] = data
	return name
}
