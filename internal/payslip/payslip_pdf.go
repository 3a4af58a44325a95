package payslip

import (
	"bytes"
	"fmt"
	"strings"
)

// payslipDocument carries everything the renderer needs; amounts are minor
// currency units.
type payslipDocument struct {
	EmployeeName  string
	Number        string
	PeriodMonth   int
	PeriodYear    int
	BaseSalary    int64
	OvertimeHours int64
	OvertimeTotal int64
	ClaimTotal    int64
	Adjustments   []ManualAdjustment
	GrossSalary   int64
	NetSalary     int64
}

func buildPayslipPDF(doc payslipDocument) ([]byte, error) {
	lines := []string{
		"PAYSLIP",
		fmt.Sprintf("No: %s", doc.Number),
		fmt.Sprintf("Employee: %s", doc.EmployeeName),
		fmt.Sprintf("Period: %02d/%d", doc.PeriodMonth, doc.PeriodYear),
		"",
		fmt.Sprintf("Base salary: %d", doc.BaseSalary),
		fmt.Sprintf("Overtime (%d h): %d", doc.OvertimeHours, doc.OvertimeTotal),
		fmt.Sprintf("Claims: %d", doc.ClaimTotal),
	}

	for _, adj := range doc.Adjustments {
		sign := "+"
		if adj.Type == AdjustmentDeduction {
			sign = "-"
		}
		lines = append(lines, fmt.Sprintf("%s: %s%d", adj.Label, sign, adj.Amount))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Gross: %d", doc.GrossSalary),
		fmt.Sprintf("Net: %d", doc.NetSalary),
	)

	return renderTextPDF(lines)
}

// renderTextPDF emits a minimal single-page PDF, one text line per entry.
// Enough for a payslip; no external rendering dependency to operate.
func renderTextPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
