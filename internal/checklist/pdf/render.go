package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"personalportal/internal/checklist/model"
)

const (
	title          = "Personal Portal Checklist"
	emptyNotice    = "No items in this checklist."
	timestampFmt   = "1/2/2006 3:04 PM"
	margin         = 14.0 // mm, roughly 40pt
	footerReserve  = 20.0
	columnGutter   = 4.0
	checkboxSize   = 3.5
	textIndent     = 5.5
	descIndent     = 2.0
	nameLineHeight = 4.5
	descLineHeight = 3.8
	itemSpacing    = 2.2
	cellPad        = 1.0
)

type rgb struct{ r, g, b int }

var (
	titleBlue = rgb{25, 118, 210}
	groupBlue = rgb{30, 136, 229}
	darkGrey  = rgb{97, 97, 97}
	descGrey  = rgb{117, 117, 117}
	ruleGrey  = rgb{158, 158, 158}
	black     = rgb{0, 0, 0}
)

// Renderer turns checklists into PDF documents. It holds no per-call state
// and may be shared between goroutines.
type Renderer struct {
	// Now stamps the footer and the document info. Defaults to time.Now.
	Now func() time.Time
	// Location is used for every printed timestamp. Defaults to time.Local.
	Location *time.Location
}

func NewRenderer() *Renderer {
	return &Renderer{Now: time.Now, Location: time.Local}
}

// Render renders c with the default renderer.
func Render(c model.Checklist) []byte {
	return NewRenderer().Render(c)
}

// Render lays out c and returns the finished document. Two calls with the
// same checklist and the same clock produce identical bytes.
//
// The only failures fpdf can report here come from broken font or layout
// constants, so they panic instead of being returned.
func (r *Renderer) Render(c model.Checklist) []byte {
	now, loc := time.Now, time.Local
	if r.Now != nil {
		now = r.Now
	}
	if r.Location != nil {
		loc = r.Location
	}
	generated := now().In(loc)

	doc := newDocument(generated, loc)
	doc.pdf.SetTitle(c.Name, true)
	doc.pdf.AddPage()
	doc.info(c)

	if len(c.Items) == 0 {
		doc.emptyState()
	} else {
		for _, g := range Layout(c.Items) {
			doc.group(g)
		}
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		panic(fmt.Sprintf("pdf: render checklist %s: %v", c.ID, err))
	}
	return buf.Bytes()
}

type document struct {
	pdf       *fpdf.Fpdf
	tr        func(string) string
	loc       *time.Location
	width     float64 // printable width
	bottom    float64 // lowest y content may reach
	colWidth  float64
	textWidth float64
}

func newDocument(generated time.Time, loc *time.Location) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(cellPad)
	pdf.SetCompression(false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generated)
	pdf.SetModificationDate(generated)
	pdf.SetCreator("personalportal", false)
	pdf.AliasNbPages("{nb}")

	pageW, pageH := pdf.GetPageSize()
	d := &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		loc:    loc,
		width:  pageW - 2*margin,
		bottom: pageH - footerReserve,
	}
	d.colWidth = (d.width - (columnCount-1)*columnGutter) / columnCount
	d.textWidth = d.colWidth - textIndent

	pdf.SetHeaderFunc(d.header)
	pdf.SetFooterFunc(func() { d.footer(generated) })
	return d
}

func (d *document) font(style string, size float64, color rgb) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.SetTextColor(color.r, color.g, color.b)
}

func (d *document) rule(y, lineWidth float64, color rgb) {
	d.pdf.SetDrawColor(color.r, color.g, color.b)
	d.pdf.SetLineWidth(lineWidth)
	d.pdf.Line(margin, y, margin+d.width, y)
}

func (d *document) header() {
	d.font("B", 18, titleBlue)
	d.pdf.CellFormat(0, 9, d.tr(title), "", 1, "L", false, 0, "")
	d.rule(d.pdf.GetY()+1, 0.7, darkGrey)
	d.pdf.Ln(6)
}

func (d *document) footer(generated time.Time) {
	d.pdf.SetY(-15)
	d.rule(d.pdf.GetY(), 0.3, ruleGrey)
	d.pdf.Ln(1.5)
	d.font("", 8, black)
	text := fmt.Sprintf("Generated: %s  |  Page %d of {nb}", generated.Format(timestampFmt), d.pdf.PageNo())
	d.pdf.CellFormat(0, 6, d.tr(text), "", 0, "C", false, 0, "")
}

// info prints name/type and the checklist's own timestamps above the grid.
func (d *document) info(c model.Checklist) {
	const lineH = 6
	y := d.pdf.GetY()

	d.labelled("Name: ", c.Name, lineH)

	typeLabel, typeValue := d.tr("Type: "), d.tr(c.Type)
	d.font("B", 11, black)
	labelW := d.pdf.GetStringWidth(typeLabel)
	d.font("", 11, black)
	valueW := d.pdf.GetStringWidth(typeValue)
	d.pdf.SetXY(margin+d.width-labelW-valueW-2*cellPad, y)
	d.labelled("Type: ", c.Type, lineH)
	d.pdf.Ln(lineH + 1)

	d.labelled("Created: ", c.Created.In(d.loc).Format(timestampFmt), lineH)
	d.font("", 11, black)
	d.pdf.CellFormat(d.pdf.GetStringWidth("  |  ")+2*cellPad, lineH, "  |  ", "", 0, "L", false, 0, "")
	d.labelled("Updated: ", c.Updated.In(d.loc).Format(timestampFmt), lineH)
	d.pdf.Ln(lineH + 3)

	d.rule(d.pdf.GetY(), 0.3, ruleGrey)
	d.pdf.Ln(4)
}

// labelled writes a bold label followed by a regular value on the current line.
func (d *document) labelled(label, value string, h float64) {
	label, value = d.tr(label), d.tr(value)
	d.font("B", 11, black)
	d.pdf.CellFormat(d.pdf.GetStringWidth(label)+cellPad, h, label, "", 0, "L", false, 0, "")
	d.font("", 11, black)
	d.pdf.CellFormat(d.pdf.GetStringWidth(value)+cellPad, h, value, "", 0, "L", false, 0, "")
}

func (d *document) emptyState() {
	d.pdf.Ln(6)
	d.font("I", 12, ruleGrey)
	d.pdf.CellFormat(0, 7, d.tr(emptyNotice), "", 1, "L", false, 0, "")
}

const groupHeaderHeight = 9

func (d *document) groupHeader(label string) {
	d.font("B", 14, groupBlue)
	d.pdf.CellFormat(0, groupHeaderHeight, d.tr(label), "", 1, "L", false, 0, "")
}

// group prints one block row by row. Row i holds the i-th item of every
// column, so all three columns advance together and a page break never
// splits a row.
func (d *document) group(g Group) {
	cells := make([][columnCount]*cell, g.Rows())
	for c, col := range g.Columns {
		for i, it := range col {
			cells[i][c] = d.measure(it)
		}
	}

	d.pdf.Ln(3)
	if len(cells) > 0 && d.pdf.GetY()+groupHeaderHeight+rowHeight(cells[0]) > d.bottom {
		d.pdf.AddPage()
	}
	d.groupHeader(g.Label)

	for _, row := range cells {
		h := rowHeight(row)
		if d.pdf.GetY()+h > d.bottom {
			d.pdf.AddPage()
			d.groupHeader(g.Label + " (cont.)")
		}
		y := d.pdf.GetY()
		for c, cl := range row {
			if cl != nil {
				d.drawCell(cl, margin+float64(c)*(d.colWidth+columnGutter), y)
			}
		}
		d.pdf.SetXY(margin, y+h)
	}
}

type cell struct {
	name []string
	desc []string
}

func (c *cell) height() float64 {
	return float64(len(c.name))*nameLineHeight + float64(len(c.desc))*descLineHeight + itemSpacing
}

func rowHeight(row [columnCount]*cell) float64 {
	var h float64
	for _, c := range row {
		if c != nil {
			h = max(h, c.height())
		}
	}
	return h
}

func (d *document) measure(it model.ChecklistItem) *cell {
	c := &cell{}
	d.font("B", 10, black)
	c.name = d.wrap(it.ItemName, d.textWidth)
	if strings.TrimSpace(it.Description) != "" {
		d.font("I", 8, descGrey)
		c.desc = d.wrap(it.Description, d.textWidth-descIndent)
	}
	return c
}

func (d *document) drawCell(c *cell, x, y float64) {
	d.pdf.SetDrawColor(darkGrey.r, darkGrey.g, darkGrey.b)
	d.pdf.SetLineWidth(0.3)
	d.pdf.Rect(x, y+0.6, checkboxSize, checkboxSize, "D")

	d.font("B", 10, black)
	for i, line := range c.name {
		d.pdf.SetXY(x+textIndent, y+float64(i)*nameLineHeight)
		d.pdf.CellFormat(d.textWidth, nameLineHeight, line, "", 0, "L", false, 0, "")
	}
	descY := y + float64(len(c.name))*nameLineHeight
	d.font("I", 8, descGrey)
	for i, line := range c.desc {
		d.pdf.SetXY(x+textIndent+descIndent, descY+float64(i)*descLineHeight)
		d.pdf.CellFormat(d.textWidth-descIndent, descLineHeight, line, "", 0, "L", false, 0, "")
	}
}

// wrap splits txt into lines no wider than w using the current font and
// returns them already encoded for the core fonts.
//
// fpdf measures core-font text per byte but SplitText walks runes, so the
// text is encoded first and each byte is handed over as its own rune.
func (d *document) wrap(txt string, w float64) []string {
	enc := d.tr(txt)
	runes := make([]rune, len(enc))
	for i := 0; i < len(enc); i++ {
		runes[i] = rune(enc[i])
	}
	lines := d.pdf.SplitText(string(runes), w)
	if len(lines) == 0 {
		return []string{""}
	}
	for i, line := range lines {
		b := make([]byte, 0, len(line))
		for _, r := range line {
			b = append(b, byte(r))
		}
		lines[i] = string(b)
	}
	return lines
}
