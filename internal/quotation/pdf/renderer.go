// Package pdf renders quotations into printable A4 documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/quotedesk/quotedesk/internal/company"
	"github.com/quotedesk/quotedesk/internal/profile"
	"github.com/quotedesk/quotedesk/internal/quotation"
)

// RenderError is a fatal rendering failure. No document bytes are
// produced when it is returned.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return "render quotation: " + e.Reason
}

// FatalRender marks the error as non-retryable.
func (e *RenderError) FatalRender() bool { return true }

// Layout geometry in millimetres on A4 portrait.
const (
	marginX      = 14.0
	headerTopY   = 12.0
	bottomZone   = 20.0
	pageResetY   = 20.0
	tableLineH   = 4.0
	minRowHeight = 10.0
)

// Brand accent color.
const (
	brandR = 245
	brandG = 130
	brandB = 32
)

// Renderer produces quotation PDFs. Safe for concurrent use; each
// render holds only its own document buffer.
type Renderer struct {
	client  *http.Client
	logger  *slog.Logger
	observe func(outcome string)
}

// NewRenderer constructs a renderer. The observe callback receives one
// of "ok", "fallback_logo", "error" per render; nil disables it.
func NewRenderer(client *http.Client, logger *slog.Logger, observe func(string)) *Renderer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Renderer{client: client, logger: logger, observe: observe}
}

func (r *Renderer) report(outcome string) {
	if r.observe != nil {
		r.observe(outcome)
	}
}

// Render lays out the quotation document and returns the PDF bytes.
// Company and profile are mandatory; the logo is optional with a text
// fallback that never aborts the render.
func (r *Renderer) Render(ctx context.Context, q *quotation.Quotation, comp *company.Company, prof *profile.Profile) ([]byte, error) {
	if q == nil {
		r.report("error")
		return nil, &RenderError{Reason: "quotation data is missing"}
	}
	if comp == nil {
		r.report("error")
		return nil, &RenderError{Reason: "company data is missing"}
	}
	if prof == nil {
		r.report("error")
		return nil, &RenderError{Reason: "profile data is missing"}
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(q.Number, false)
	doc.SetAutoPageBreak(false, bottomZone)
	doc.SetFooterFunc(func() {
		doc.SetY(-10)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(0, 5, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	l := &layout{doc: doc}
	l.pageW, l.pageH = doc.GetPageSize()

	fellBack := r.drawHeader(ctx, l, prof)
	r.drawReferenceBlock(l, q)
	r.drawClientBlock(l, comp)
	r.drawSubjectAndIntro(l)
	r.drawProductTable(l, q.Products)
	r.drawGrandTotal(l, q.GrandTotal)
	r.drawTerms(l, q.TermsAndConditions)
	r.drawClosing(l, q, prof)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		r.report("error")
		return nil, &RenderError{Reason: fmt.Sprintf("write document: %v", err)}
	}

	if fellBack {
		r.report("fallback_logo")
	} else {
		r.report("ok")
	}
	return buf.Bytes(), nil
}

// layout tracks the vertical cursor. ensure is the single place that
// decides page breaks: sections state how much room they need before
// drawing.
type layout struct {
	doc          *gofpdf.Fpdf
	pageW, pageH float64
	y            float64
}

// ensure guarantees at least h millimetres of vertical room, starting
// a fresh page when the current one cannot fit it. Reports whether a
// break happened.
func (l *layout) ensure(h float64) bool {
	if l.y+h > l.pageH-bottomZone {
		l.doc.AddPage()
		l.y = pageResetY
		return true
	}
	return false
}

func (l *layout) textRight(xRight, y float64, txt string) {
	w := l.doc.GetStringWidth(txt)
	l.doc.Text(xRight-w, y, txt)
}

// drawHeader draws logo-or-text branding top-left, the wrapped address
// and contact block top-right, and the brand rule under whichever runs
// deeper. Reports whether the text fallback replaced the logo.
func (r *Renderer) drawHeader(ctx context.Context, l *layout, prof *profile.Profile) bool {
	doc := l.doc
	fellBack := false

	drawTextBrand := func() {
		doc.SetFont("Helvetica", "B", 16)
		doc.SetTextColor(0, 0, 0)
		doc.Text(marginX, 20, orDefault(prof.CompanyName, "My Company"))
	}

	if prof.LogoURL != nil && *prof.LogoURL != "" {
		logo, err := fetchLogo(ctx, r.client, *prof.LogoURL)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("logo unavailable, using text fallback", "url", *prof.LogoURL, "error", err)
			}
			fellBack = true
			drawTextBrand()
		} else {
			name := "profile-logo"
			opts := gofpdf.ImageOptions{ImageType: logo.imageType}
			doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(logo.data))
			doc.ImageOptions(name, marginX, headerTopY, 50, 15, false, opts, 0, "")
		}
	} else {
		drawTextBrand()
	}

	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(0, 0, 0)
	headerRightX := l.pageW - marginX

	rightY := headerTopY
	addressLines := doc.SplitText("Address: "+stringOr(prof.Address, "N/A"), 80)
	for _, line := range addressLines {
		l.textRight(headerRightX, rightY, line)
		rightY += 3.5
	}

	for _, line := range []string{
		prefixedOrEmpty("Tel: ", prof.Phone),
		prefixedOrEmpty("Email: ", prof.Email),
		prefixedOrEmpty("URL: ", prof.Website),
		prefixedOrEmpty("GSTIN: ", prof.GSTIN),
	} {
		if line == "" {
			continue
		}
		l.textRight(headerRightX, rightY, line)
		rightY += 3.5
	}

	doc.SetDrawColor(brandR, brandG, brandB)
	doc.SetLineWidth(1)
	doc.Line(marginX, rightY, l.pageW-marginX, rightY)
	l.y = rightY
	return fellBack
}

func (r *Renderer) drawReferenceBlock(l *layout, q *quotation.Quotation) {
	doc := l.doc
	headerRightX := l.pageW - marginX

	l.y += 6
	doc.SetFontSize(10)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 10)
	l.textRight(headerRightX-25, l.y, "Ref. No.")
	doc.SetFont("Helvetica", "", 10)
	l.textRight(headerRightX, l.y, q.Number)

	l.y += 5
	doc.SetFont("Helvetica", "B", 10)
	l.textRight(headerRightX-25, l.y, "Date")
	doc.SetFont("Helvetica", "", 10)
	l.textRight(headerRightX, l.y, q.Date.Format("02/01/2006"))
}

// drawClientBlock writes label/value pairs for the client company.
// Empty values produce no row at all.
func (r *Renderer) drawClientBlock(l *layout, comp *company.Company) {
	doc := l.doc
	l.y += 5

	addLine := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(0, 0, 0)
		doc.Text(marginX, l.y, label)
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(brandR, brandG, brandB)
		doc.Text(48, l.y, value)
		doc.SetTextColor(0, 0, 0)
		l.y += 6
	}

	addLine("Company Name:", comp.Name)
	addLine("Contact Person:", stringOr(comp.ContactPerson, ""))
	addLine("Contact No.:", stringOr(comp.Phone, ""))
	addLine("Email id:", stringOr(comp.Email, ""))
	addLine("GSTIN:", stringOr(comp.GSTIN, ""))
}

const introText = "With reference to our recent discussion and after carefully reviewing your requirements, we are pleased to present our best proposal as outlined below:"

func (r *Renderer) drawSubjectAndIntro(l *layout) {
	doc := l.doc

	l.y += 5
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(marginX, l.y, "Subject: Quotation")
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.3)
	doc.Line(marginX, l.y+1, marginX+30, l.y+1)

	l.y += 8
	doc.SetFont("Helvetica", "", 10)
	doc.Text(marginX, l.y, "Dear Sir,")
	l.y += 6

	lines := doc.SplitText(introText, l.pageW-2*marginX)
	for _, line := range lines {
		doc.Text(marginX, l.y, line)
		l.y += 5
	}
	l.y += 3
}

type tableColumn struct {
	width float64
	align string
}

var productColumns = []tableColumn{
	{width: 15, align: "C"}, // Sr. No.
	{width: 60, align: "L"}, // Description
	{width: 25, align: "C"}, // HSN
	{width: 27, align: "C"}, // Qty.
	{width: 27, align: "R"}, // Unit Price
	{width: 28, align: "R"}, // Amount
}

var productHeadings = []string{"Sr. No.", "Description", "HSN", "Qty.", "Unit Price", "Amount"}

func (r *Renderer) drawProductTable(l *layout, products []quotation.Product) {
	l.ensure(minRowHeight + 8)
	r.drawTableHeader(l)

	for _, p := range products {
		r.drawTableRow(l, p)
	}
}

func (r *Renderer) drawTableHeader(l *layout) {
	doc := l.doc
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(brandR, brandG, brandB)
	doc.SetTextColor(255, 255, 255)
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.2)

	x := marginX
	const headerH = 8.0
	for i, col := range productColumns {
		doc.Rect(x, l.y, col.width, headerH, "FD")
		drawCellText(doc, x, l.y, col.width, headerH, []string{productHeadings[i]}, col.align)
		x += col.width
	}
	doc.SetTextColor(0, 0, 0)
	l.y += headerH
}

func (r *Renderer) drawTableRow(l *layout, p quotation.Product) {
	doc := l.doc
	doc.SetFont("Helvetica", "", 9)

	description := doc.SplitText(p.Name, productColumns[1].width-4)
	description = append(description, doc.SplitText(fmt.Sprintf("(Model No: %s)", orDefault(p.Model, "N/A")), productColumns[1].width-4)...)

	rowH := float64(len(description))*tableLineH + 5
	if rowH < minRowHeight {
		rowH = minRowHeight
	}

	if l.ensure(rowH) {
		r.drawTableHeader(l)
		doc.SetFont("Helvetica", "", 9)
	}

	cells := [][]string{
		{fmt.Sprintf("%d", p.SrNo)},
		description,
		{orDefault(p.HSN, "N/A")},
		{strings.TrimSpace(fmt.Sprintf("%s %s", quotation.FormatQuantity(p.Quantity), p.QuantityType))},
		{FormatAmount(p.Price)},
		{FormatAmount(p.Total)},
	}

	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.2)
	x := marginX
	for i, col := range productColumns {
		doc.Rect(x, l.y, col.width, rowH, "D")
		drawCellText(doc, x, l.y, col.width, rowH, cells[i], col.align)
		x += col.width
	}
	l.y += rowH
}

// drawCellText writes lines vertically centered inside a cell box.
func drawCellText(doc *gofpdf.Fpdf, x, y, w, h float64, lines []string, align string) {
	textH := float64(len(lines)) * tableLineH
	lineY := y + (h-textH)/2 + tableLineH*0.75
	for _, line := range lines {
		switch align {
		case "C":
			doc.Text(x+(w-doc.GetStringWidth(line))/2, lineY, line)
		case "R":
			doc.Text(x+w-2-doc.GetStringWidth(line), lineY, line)
		default:
			doc.Text(x+2, lineY, line)
		}
		lineY += tableLineH
	}
}

func (r *Renderer) drawGrandTotal(l *layout, total float64) {
	doc := l.doc

	if !l.ensure(30) {
		l.y += 8
	}
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(0, 0, 0)
	l.textRight(l.pageW-marginX-40, l.y, "Grand Total")
	doc.SetFont("Helvetica", "", 10)
	l.textRight(l.pageW-marginX, l.y, FormatAmount(total))
	l.y += 5
}

func (r *Renderer) drawTerms(l *layout, terms string) {
	lines := parseTerms(terms)
	if len(lines) == 0 {
		return
	}

	doc := l.doc
	l.ensure(80)

	l.y += 10
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(0, 0, 0)
	doc.Text(marginX, l.y, "Terms & Conditions")
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.3)
	doc.Line(marginX, l.y+1, marginX+36, l.y+1)

	l.y += 6
	doc.SetFontSize(9)
	for _, term := range lines {
		l.ensure(40)
		doc.SetFont("Helvetica", "", 9)
		doc.Text(marginX+4, l.y, "\x95 "+term.Key)
		doc.Text(50, l.y, ":")
		doc.Text(55, l.y, term.Value)
		l.y += 5
	}
}

func (r *Renderer) drawClosing(l *layout, q *quotation.Quotation, prof *profile.Profile) {
	doc := l.doc
	l.ensure(60)

	l.y += 10
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	doc.Text(marginX, l.y, "Thank You.")
	l.y += 5
	doc.Text(marginX, l.y, "Regards")

	l.y += 15
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(brandR, brandG, brandB)
	doc.Text(marginX, l.y, "For "+strings.ToUpper(orDefault(prof.CompanyName, "My Company")))
	doc.SetTextColor(0, 0, 0)

	l.y += 10
	doc.SetFont("Helvetica", "", 9)
	addAttribution := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		doc.Text(marginX, l.y, label+": "+value)
		l.y += 5
	}
	addAttribution("Reference Person", q.ReferencedBy)
	addAttribution("Created By", q.CreatedBy)

	l.y += 10
	doc.Text(marginX, l.y, "Authorized signature")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func stringOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}

func prefixedOrEmpty(prefix string, s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ""
	}
	return prefix + *s
}
