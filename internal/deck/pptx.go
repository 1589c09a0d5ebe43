// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// emuPerInch is the OOXML English Metric Unit scale.
const emuPerInch = 914400

// Slide canvas: 10 x 7.5 inches.
const (
	slideWidthEMU  = 10 * emuPerInch
	slideHeightEMU = 15 * emuPerInch / 2
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Drawing/presentation namespace triple used by every slide-level part.
const nsAttrs = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// mediaRef is an image embedded in one slide part.
type mediaRef struct {
	fileName  string // file name under ppt/media/
	data      []byte
	heightEMU int // picture height at the standard width, from the image's aspect ratio
}

// slidePart holds one slide's XML and its optional embedded picture. The
// picture, when present, is referenced from the slide XML as rId2 (rId1 is
// always the layout).
type slidePart struct {
	xml   string
	media *mediaRef
}

// emu converts inches to EMUs.
func emu(inches float64) int {
	return int(inches * emuPerInch)
}

// escXML escapes text for inclusion in XML character data or attributes.
var escXML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
).Replace

// imageExtent returns the media file extension and the picture height in EMUs
// for a fixed display width, preserving the image's native aspect ratio. An
// undecodable image falls back to a 4:3 box and a .bin extension.
func imageExtent(data []byte, widthEMU int) (ext string, heightEMU int) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 {
		return ".bin", widthEMU * 3 / 4
	}

	heightEMU = widthEMU * cfg.Height / cfg.Width

	switch format {
	case "jpeg":
		ext = ".jpg"
	default:
		ext = "." + format
	}
	return ext, heightEMU
}

// --- static package parts ---

const relsRoot = xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

const slideMasterXML = xmlDecl + `<p:sldMaster ` + nsAttrs + `>` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRels = xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayoutXML = xmlDecl + `<p:sldLayout ` + nsAttrs + ` type="blank">` +
	`<p:cSld><p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr/>` +
	`</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const slideLayoutRels = xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

// themeXML is the minimum viable theme: a colour scheme, a font scheme, and
// the three-entry format scheme lists the schema requires.
const themeXML = xmlDecl + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Deck Engine">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Deck Engine">` +
	`<a:dk1><a:srgbClr val="000000"/></a:dk1>` +
	`<a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="003366"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4F81BD"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="C0504D"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="8064A2"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="F79646"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0000FF"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="800080"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Deck Engine">` +
	`<a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Deck Engine">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="25400"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="38100"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`

// --- generated package parts ---

// contentTypesXML lists defaults for every media extension in use plus one
// override per XML part.
func contentTypesXML(slideCount int, mediaExts map[string]bool) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	for _, e := range []struct{ ext, typ string }{
		{"png", "image/png"},
		{"jpg", "image/jpeg"},
		{"gif", "image/gif"},
		{"bin", "application/octet-stream"},
	} {
		if mediaExts["."+e.ext] {
			fmt.Fprintf(&b, `<Default Extension=%q ContentType=%q/>`, e.ext, e.typ)
		}
	}

	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

// presentationXML declares the master, the slide list, and the slide size.
func presentationXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<p:presentation ` + nsAttrs + `>`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 1+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideWidthEMU, slideHeightEMU)
	fmt.Fprintf(&b, `<p:notesSz cx="%d" cy="%d"/>`, slideHeightEMU, slideWidthEMU)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

// presentationRels wires rId1 to the master and rId2.. to the slides.
func presentationRels(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 1+i, i)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// slideRels wires the slide to its layout and, when media is present, to its
// picture as rId2.
func slideRels(media *mediaRef) string {
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	if media != nil {
		fmt.Fprintf(&b, `<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`, media.fileName)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// writeArchive writes the complete pptx package. Part names and entry order
// are fixed and no timestamps are stored, so identical inputs produce
// byte-identical archives.
func writeArchive(out io.Writer, slides []slidePart) error {
	zw := zip.NewWriter(out)

	mediaExts := make(map[string]bool)
	for _, s := range slides {
		if s.media != nil {
			if dot := strings.LastIndex(s.media.fileName, "."); dot >= 0 {
				mediaExts[s.media.fileName[dot:]] = true
			}
		}
	}

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML(len(slides), mediaExts)},
		{"_rels/.rels", relsRoot},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(slides))},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}

	for _, p := range parts {
		if err := writeEntry(zw, p.name, []byte(p.data)); err != nil {
			return err
		}
	}

	for i, s := range slides {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := writeEntry(zw, name, []byte(s.xml)); err != nil {
			return err
		}
		relName := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)
		if err := writeEntry(zw, relName, []byte(slideRels(s.media))); err != nil {
			return err
		}
	}

	for _, s := range slides {
		if s.media == nil {
			continue
		}
		if err := writeEntry(zw, "ppt/media/"+s.media.fileName, s.media.data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// writeEntry adds one file to the archive with a zeroed header timestamp.
func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("creating archive entry %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing archive entry %s: %w", name, err)
	}
	return nil
}
