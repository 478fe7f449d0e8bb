package rendering

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/richat-staffing/internal/types"
)

// Page geometry in millimeters and font sizes in points
const (
	pageMargin   = 15.0
	breakMargin  = 20.0
	contentWidth = 180.0
	lineHeight   = 4.5
	bodySize     = 9.5
	headerSize   = 12.0
	titleSize    = 14.0
	footerSize   = 7.5
	fontFamily   = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	navy      = rgb{31, 56, 100}
	lightBlue = rgb{221, 235, 247}
	black     = rgb{0, 0, 0}
	gray      = rgb{110, 110, 110}

	identityWidths = []float64{55, contentWidth - 55}
	projectWidths  = []float64{50, contentWidth - 50}
)

// RenderResult describes a rendered canonical CV
type RenderResult struct {
	ID              string    `json:"id"`
	Pages           int       `json:"pages"`
	Bytes           int64     `json:"bytes"`
	GeneratedAt     time.Time `json:"generated_at"`
	QualityScore    int       `json:"quality_score"`
	ComplianceScore int       `json:"format_compliance_score"`
}

// Renderer renders Profiles as canonical A4 CVs. It is safe for concurrent use.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a Renderer. now stamps the footer; nil means time.Now.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

// Render lays out p and writes the PDF to w. Failures carry the
// pdf_render_failed code; nothing usable has been written when an error is returned.
func (r *Renderer) Render(p *types.Profile, consultantID string, w io.Writer) (*RenderResult, error) {
	if p == nil {
		return nil, types.NewError(types.CodePDFRenderFailed, "no profile to render", nil)
	}
	return r.RenderDocument(BuildDocument(p, consultantID, r.now()), w)
}

// RenderDocument writes an already built layout to w
func (r *Renderer) RenderDocument(doc *Document, w io.Writer) (*RenderResult, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	c := &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, breakMargin)
	pdf.SetCreationDate(doc.Footer.GeneratedAt)
	pdf.SetTitle(doc.Footer.ID, true)
	pdf.SetCreator("richat-staffing", true)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() { c.footer(doc.Footer) })

	pdf.AddPage()
	c.draw(doc)
	if err := pdf.Error(); err != nil {
		return nil, types.NewError(types.CodePDFRenderFailed, "layout failed",
			&RenderError{Message: "failed to lay out document", Cause: err})
	}
	pages := pdf.PageNo()

	cw := &countingWriter{w: w}
	if err := pdf.Output(cw); err != nil {
		return nil, types.NewError(types.CodePDFRenderFailed, "output failed",
			&RenderError{Message: "failed to write PDF", Cause: err})
	}

	return &RenderResult{
		ID:              doc.Footer.ID,
		Pages:           pages,
		Bytes:           cw.n,
		GeneratedAt:     doc.Footer.GeneratedAt,
		QualityScore:    doc.Footer.QualityScore,
		ComplianceScore: doc.Footer.ComplianceScore,
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// canvas draws the template regions on an fpdf document
type canvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (c *canvas) text(s string) string {
	return c.tr(EscapeText(s))
}

func (c *canvas) color(col rgb) {
	c.pdf.SetTextColor(col.r, col.g, col.b)
}

func (c *canvas) draw(doc *Document) {
	c.centered(doc.Heading, titleSize, navy)
	c.pdf.Ln(3)
	c.rows(identityWidths, doc.Identity)
	c.pdf.Ln(3)
	if doc.ProfessionalTitle != "" {
		c.centered([]string{doc.ProfessionalTitle}, titleSize, black)
	}
	c.contact(doc.Contact)

	c.section(titleSummary)
	c.paragraph(doc.Summary)
	c.section(titleEducation)
	c.table(doc.Education)
	c.section(titleExperience)
	c.table(doc.Experience)
	c.section(titleSkills)
	c.bullets(doc.Skills)
	c.section(titleAssociations)
	c.paragraph(doc.Associations)
	c.section(titleLanguages)
	c.table(doc.Languages)
	c.section(titleMission)
	for i, project := range doc.Projects {
		c.rows(projectWidths, project)
		if len(doc.Activities[i]) > 0 {
			c.pdf.SetFont(fontFamily, "B", bodySize)
			c.pdf.CellFormat(0, lineHeight+1, c.text("Activités :"), "", 1, "L", false, 0, "")
			c.bullets(doc.Activities[i])
		}
		c.pdf.Ln(2)
	}
	c.section(titleCertifications)
	c.bullets(doc.Certifications)
}

func (c *canvas) centered(lines []string, size float64, col rgb) {
	c.pdf.SetFont(fontFamily, "B", size)
	c.color(col)
	for _, l := range lines {
		c.pdf.CellFormat(0, 7, c.text(l), "", 1, "C", false, 0, "")
	}
}

func (c *canvas) contact(rows []Row) {
	line := ""
	for _, r := range rows {
		if r.Value == "" {
			continue
		}
		if line != "" {
			line += "   |   "
		}
		line += r.Label + " : " + r.Value
	}
	if line == "" {
		return
	}
	c.pdf.SetFont(fontFamily, "", bodySize)
	c.color(black)
	c.pdf.CellFormat(0, lineHeight+1, c.text(line), "", 1, "C", false, 0, "")
}

// section prints a navy header, moving to a new page when the header would
// otherwise be orphaned at the bottom
func (c *canvas) section(title string) {
	if c.needsBreak(10 + 2*lineHeight) {
		c.pdf.AddPage()
	}
	c.pdf.Ln(3)
	c.pdf.SetFont(fontFamily, "B", headerSize)
	c.color(navy)
	c.pdf.CellFormat(0, 7, c.text(title), "", 1, "L", false, 0, "")
	c.pdf.Ln(1)
}

func (c *canvas) paragraph(s string) {
	if s == "" {
		return
	}
	c.pdf.SetFont(fontFamily, "", bodySize)
	c.color(black)
	c.pdf.MultiCell(0, lineHeight+0.5, c.text(s), "", "J", false)
}

func (c *canvas) bullets(items []string) {
	c.pdf.SetFont(fontFamily, "", bodySize)
	c.color(black)
	for _, it := range items {
		c.pdf.MultiCell(0, lineHeight+0.5, c.text("• "+it), "", "L", false)
	}
}

func (c *canvas) needsBreak(h float64) bool {
	_, pageH := c.pdf.GetPageSize()
	return c.pdf.GetY()+h > pageH-breakMargin
}

// rows draws a label/value table with a shaded label column
func (c *canvas) rows(widths []float64, rs []Row) {
	for _, r := range rs {
		cells := []string{r.Label, r.Value}
		if h := c.rowHeight(widths, cells, false); c.needsBreak(h) {
			c.pdf.AddPage()
		}
		c.row(widths, cells, false, true)
	}
}

// table draws a gridded table, repeating the header row after a page break
func (c *canvas) table(t Table) {
	widths := make([]float64, len(t.Columns))
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		widths[i], headers[i] = col.Width, col.Header
	}
	c.row(widths, headers, true, false)
	for _, cells := range t.Rows {
		if h := c.rowHeight(widths, cells, false); c.needsBreak(h) {
			c.pdf.AddPage()
			c.row(widths, headers, true, false)
		}
		c.row(widths, cells, false, false)
	}
}

func (c *canvas) font(bold bool) {
	if bold {
		c.pdf.SetFont(fontFamily, "B", bodySize)
		return
	}
	c.pdf.SetFont(fontFamily, "", bodySize)
}

// rowHeight is the height of the tallest wrapped cell of a row
func (c *canvas) rowHeight(widths []float64, cells []string, header bool) float64 {
	c.font(header)
	lines := 1
	for i, w := range widths {
		if n := len(c.pdf.SplitLines([]byte(c.text(cellAt(cells, i))), w)); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineHeight + 1
}

// row draws one grid row; text wraps inside its cell
func (c *canvas) row(widths []float64, cells []string, header, shadeLabel bool) {
	h := c.rowHeight(widths, cells, header)
	x, y := pageMargin, c.pdf.GetY()

	c.pdf.SetDrawColor(black.r, black.g, black.b)
	c.pdf.SetLineWidth(0.2)
	c.pdf.SetFillColor(lightBlue.r, lightBlue.g, lightBlue.b)
	c.color(black)

	for i, w := range widths {
		style := "D"
		if header || (shadeLabel && i == 0) {
			style = "FD"
		}
		c.pdf.Rect(x, y, w, h, style)
		c.font(header || (shadeLabel && i == 0))
		c.pdf.SetXY(x, y+0.5)
		c.pdf.MultiCell(w, lineHeight, c.text(cellAt(cells, i)), "", "L", false)
		x += w
	}
	c.pdf.SetXY(pageMargin, y+h)
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func (c *canvas) footer(f Footer) {
	c.pdf.SetY(-15)
	c.pdf.SetFont(fontFamily, "I", footerSize)
	c.color(gray)
	summary := fmt.Sprintf("Généré le %s   |   Qualité : %d/100   |   Conformité : %d/100",
		f.GeneratedAt.Format("02/01/2006 15:04"), f.QualityScore, f.ComplianceScore)
	c.pdf.CellFormat(0, 4, c.text(summary), "", 1, "C", false, 0, "")
	c.pdf.CellFormat(0, 4, c.text(fmt.Sprintf("%s   |   Page %d/{nb}", f.ID, c.pdf.PageNo())), "", 0, "C", false, 0, "")
}
