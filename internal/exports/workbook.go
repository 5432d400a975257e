package exports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SttarkMax/sistema/internal/sales"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/xuri/excelize/v2"
)

const brlNumFmt = `"R$" #,##0.00`

// sheet wraps an excelize file with the styles shared by every export.
type sheet struct {
	f      *excelize.File
	name   string
	header int
	body   int
	money  int
	total  int
}

func newSheet(name string, widths []float64) (*sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		f.Close()
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	for i, width := range widths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(name, column, column, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set col width %s: %w", column, err)
		}
	}

	s := &sheet{f: f, name: name}
	moneyFmt := brlNumFmt
	styles := []struct {
		target *int
		style  *excelize.Style
	}{
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&s.body, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&s.money, &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &moneyFmt}},
		{&s.total, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &moneyFmt}},
	}
	for _, st := range styles {
		id, err := f.NewStyle(st.style)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create style: %w", err)
		}
		*st.target = id
	}
	return s, nil
}

func (s *sheet) cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (s *sheet) writeRow(row int, values []any, style int) error {
	for i, v := range values {
		if str, ok := v.(string); ok {
			v = sanitizeExcelCell(str)
		}
		if err := s.f.SetCellValue(s.name, s.cell(i+1, row), v); err != nil {
			return err
		}
	}
	if len(values) == 0 {
		return nil
	}
	return s.f.SetCellStyle(s.name, s.cell(1, row), s.cell(len(values), row), style)
}

func (s *sheet) styleCell(col, row, style int) error {
	c := s.cell(col, row)
	return s.f.SetCellStyle(s.name, c, c, style)
}

func (s *sheet) bytes() ([]byte, error) {
	defer s.f.Close()
	var buf bytes.Buffer
	if err := s.f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// PayablesWorkbook exports the accounts-payable list in the given order.
func PayablesWorkbook(entries []models.AccountsPayableEntry) ([]byte, error) {
	out, err := payablesWorkbook(entries)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to build payables workbook")
	}
	return out, nil
}

func payablesWorkbook(entries []models.AccountsPayableEntry) ([]byte, error) {
	s, err := newSheet("Contas a Pagar", []float64{36, 16, 14, 12, 14, 40})
	if err != nil {
		return nil, err
	}

	headers := []any{"Descrição", "Valor", "Vencimento", "Pago", "Parcela", "Observações"}
	if err := s.writeRow(1, headers, s.header); err != nil {
		s.f.Close()
		return nil, err
	}

	row := 2
	for _, e := range entries {
		paid := "Não"
		if e.IsPaid {
			paid = "Sim"
		}
		installment := ""
		if e.InstallmentNumberOfSeries != nil && e.TotalInstallmentsInSeries != nil {
			installment = fmt.Sprintf("%d/%d", *e.InstallmentNumberOfSeries, *e.TotalInstallmentsInSeries)
		}
		values := []any{e.Name, e.Amount.InexactFloat64(), e.DueDate.Format("02/01/2006"), paid, installment, deref(e.Notes)}
		if err := s.writeRow(row, values, s.body); err != nil {
			s.f.Close()
			return nil, err
		}
		if err := s.styleCell(2, row, s.money); err != nil {
			s.f.Close()
			return nil, err
		}
		row++
	}

	if len(entries) > 0 {
		if err := s.writeTotal(row+1, 1, 2, fmt.Sprintf("SUM(B2:B%d)", row-1)); err != nil {
			s.f.Close()
			return nil, err
		}
	}
	return s.bytes()
}

// SalesWorkbook exports the sales-performance report.
func SalesWorkbook(rows []sales.Performance, generatedAt time.Time) ([]byte, error) {
	out, err := salesWorkbook(rows, generatedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to build sales workbook")
	}
	return out, nil
}

func salesWorkbook(rows []sales.Performance, generatedAt time.Time) ([]byte, error) {
	s, err := newSheet("Desempenho de Vendas", []float64{20, 30, 12, 12, 18, 18, 14})
	if err != nil {
		return nil, err
	}

	headers := []any{"Usuário", "Nome", "Orçamentos", "Ganhos", "Total emitido", "Total ganho", "Conversão (%)"}
	if err := s.writeRow(1, headers, s.header); err != nil {
		s.f.Close()
		return nil, err
	}

	line := 2
	for _, p := range rows {
		values := []any{
			p.Username,
			p.FullName,
			p.QuotesIssued,
			p.QuotesWon,
			p.IssuedTotal.InexactFloat64(),
			p.WonTotal.InexactFloat64(),
			p.ConversionRate.InexactFloat64(),
		}
		if err := s.writeRow(line, values, s.body); err != nil {
			s.f.Close()
			return nil, err
		}
		for _, c := range []int{5, 6} {
			if err := s.styleCell(c, line, s.money); err != nil {
				s.f.Close()
				return nil, err
			}
		}
		line++
	}

	footer := line + 1
	if err := s.f.SetCellValue(s.name, s.cell(1, footer), "Gerado em "+generatedAt.Format("02/01/2006 15:04")); err != nil {
		s.f.Close()
		return nil, err
	}
	return s.bytes()
}

func (s *sheet) writeTotal(row, labelCol, valueCol int, formula string) error {
	if err := s.f.SetCellValue(s.name, s.cell(labelCol, row), "Total"); err != nil {
		return err
	}
	if err := s.f.SetCellFormula(s.name, s.cell(valueCol, row), formula); err != nil {
		return err
	}
	return s.f.SetCellStyle(s.name, s.cell(labelCol, row), s.cell(valueCol, row), s.total)
}

// sanitizeExcelCell prefixes a quote to values Excel would read as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
