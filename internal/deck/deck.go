// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck assembles an outline and its per-slide images into a
// PowerPoint (.pptx) file. The OOXML package is written directly: a slide
// master, a blank layout, a theme, and one hand-built slide part per deck
// slide.
package deck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/deck-engine/pkg/types"
)

// Deck colours.
const (
	headerBlue = "003366" // band and title-slide fill
	bulletNavy = "001E3C" // bullet text
	white      = "FFFFFF"
)

// Picture region: right side of a content slide. Height follows the image's
// aspect ratio.
const (
	pictureLeftIn  = 5.5
	pictureTopIn   = 2.0
	pictureWidthIn = 4.0
)

// Assemble renders the outline into a presentation at path: one title slide
// followed by one content slide per outline entry, embedding images[i] where
// present. Missing image entries are tolerated; any build or I/O error is
// fatal. The file is written via a temp-and-rename so a failed run leaves no
// partial deck behind.
func Assemble(outline *types.Outline, images types.ImageMap, path string, w io.Writer) error {
	if err := outline.Validate(); err != nil {
		return fmt.Errorf("cannot assemble: %w", err)
	}

	slides := make([]slidePart, 0, len(outline.Slides)+1)
	slides = append(slides, titleSlide(outline.Title))

	mediaCount := 0
	for i, spec := range outline.Slides {
		var media *mediaRef
		if data := images[i]; data != nil {
			mediaCount++
			ext, height := imageExtent(data, emu(pictureWidthIn))
			media = &mediaRef{
				fileName:  fmt.Sprintf("image%d%s", mediaCount, ext),
				data:      data,
				heightEMU: height,
			}
		}
		slides = append(slides, contentSlide(spec, media))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	if err := writeArchive(f, slides); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}

	fmt.Fprintf(w, "assembled %s (%d slides, %d images)\n", path, len(slides), mediaCount)
	return nil
}

// titleSlide renders the opening slide: the presentation title in white on a
// dark-blue band, with an "AI-Generated Presentation" subtitle beneath it.
func titleSlide(title string) slidePart {
	shapes := []string{
		rectShape(2, "Title Band", 0, emu(1.5), slideWidthEMU, emu(1.25), headerBlue),
		textboxShape(3, "Title", 0, emu(1.5), slideWidthEMU, emu(1.25), true, []para{
			{text: title, sizePts: 40, color: white, align: "ctr"},
		}),
		textboxShape(4, "Subtitle", emu(0.5), emu(3.0), emu(9.0), emu(1.0), false, []para{
			{text: "AI-Generated Presentation: " + title, sizePts: 20, color: bulletNavy, align: "ctr"},
		}),
	}
	return slidePart{xml: slideDoc(shapes)}
}

// contentSlide renders one outline entry: header band, centered slide title,
// left bullet box, and the slide's picture on the right when media is set.
func contentSlide(spec types.SlideSpec, media *mediaRef) slidePart {
	bullets := make([]para, 0, len(spec.KeyPoints))
	for _, point := range spec.KeyPoints {
		bullets = append(bullets, para{
			text:      "• " + point,
			sizePts:   16,
			color:     bulletNavy,
			spcAftPts: 10,
		})
	}

	shapes := []string{
		rectShape(2, "Header Band", 0, 0, slideWidthEMU, emu(1.0), headerBlue),
		textboxShape(3, "Slide Title", 0, 0, slideWidthEMU, emu(1.0), true, []para{
			{text: spec.SlideTitle, sizePts: 24, color: white, align: "ctr"},
		}),
		textboxShape(4, "Key Points", emu(0.5), emu(1.5), emu(4.5), emu(5.0), false, bullets),
	}

	if media != nil {
		shapes = append(shapes, picShape(5, "Slide Image", emu(pictureLeftIn), emu(pictureTopIn), emu(pictureWidthIn), media.heightEMU))
	}

	return slidePart{xml: slideDoc(shapes), media: media}
}

// --- slide XML builders ---

// para is one paragraph of a textbox.
type para struct {
	text      string
	sizePts   int
	color     string
	align     string // "ctr" or empty for left
	spcAftPts int    // space after the paragraph, in points
}

func (p para) xml() string {
	var b strings.Builder
	b.WriteString(`<a:p>`)

	if p.align != "" || p.spcAftPts > 0 {
		b.WriteString(`<a:pPr`)
		if p.align != "" {
			fmt.Fprintf(&b, ` algn=%q`, p.align)
		}
		if p.spcAftPts > 0 {
			fmt.Fprintf(&b, `><a:spcAft><a:spcPts val="%d"/></a:spcAft></a:pPr>`, p.spcAftPts*100)
		} else {
			b.WriteString(`/>`)
		}
	}

	fmt.Fprintf(&b, `<a:r><a:rPr lang="en-US" sz="%d"><a:solidFill><a:srgbClr val=%q/></a:solidFill></a:rPr><a:t>%s</a:t></a:r>`,
		p.sizePts*100, p.color, escXML(p.text))
	b.WriteString(`</a:p>`)
	return b.String()
}

// slideDoc wraps shapes in a full slide part.
func slideDoc(shapes []string) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<p:sld ` + nsAttrs + `>`)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for _, s := range shapes {
		b.WriteString(s)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

// rectShape emits a solid-filled rectangle with no outline.
func rectShape(id int, name string, x, y, cx, cy int, fill string) string {
	return fmt.Sprintf(`<p:sp>`+
		`<p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr>`+
		`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
		`<a:solidFill><a:srgbClr val=%q/></a:solidFill>`+
		`<a:ln><a:noFill/></a:ln>`+
		`</p:spPr>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody>`+
		`</p:sp>`,
		id, name, x, y, cx, cy, fill)
}

// textboxShape emits an unfilled textbox. middleAnchor centers the text
// vertically (used for titles overlaid on the header band); word wrap is
// always on.
func textboxShape(id int, name string, x, y, cx, cy int, middleAnchor bool, paras []para) string {
	bodyPr := `<a:bodyPr wrap="square"/>`
	if middleAnchor {
		bodyPr = `<a:bodyPr wrap="square" anchor="ctr"/>`
	}

	var body strings.Builder
	for _, p := range paras {
		body.WriteString(p.xml())
	}

	return fmt.Sprintf(`<p:sp>`+
		`<p:nvSpPr><p:cNvPr id="%d" name=%q/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr>`+
		`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
		`<a:noFill/>`+
		`</p:spPr>`+
		`<p:txBody>%s<a:lstStyle/>%s</p:txBody>`+
		`</p:sp>`,
		id, name, x, y, cx, cy, bodyPr, body.String())
}

// picShape emits the picture element referencing the slide's rId2 image.
func picShape(id int, name string, x, y, cx, cy int) string {
	return fmt.Sprintf(`<p:pic>`+
		`<p:nvPicPr><p:cNvPr id="%d" name=%q/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr>`+
		`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
		`</p:spPr>`+
		`</p:pic>`,
		id, name, x, y, cx, cy)
}
