package main

import (
	"github.com/xuri/excelize/v2"

	"salesdesk/pkg/backoffice"
)

const (
	stagesSheet = "Etapas"
	rowsSheet   = "Cobranzas"
)

var rowsHeader = []interface{}{
	"Personal",
	"Fecha de venta",
	"Fecha de cobro",
	"Cliente",
	"DNI",
	"Celular",
	"Producto",
	"Monto total",
	"Monto depositado",
	"Diferencia",
}

// writeXLSX saves the funnel counts and the surviving rows as two sheets.
func writeXLSX(path string, diag backoffice.Diagnosis) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stagesSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(stagesSheet, "A1", &[]interface{}{"Etapa", "Filas"}); err != nil {
		return err
	}
	for i, s := range diag.Stages {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(stagesSheet, ref, &[]interface{}{s.Name, s.Count}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(rowsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(rowsSheet, "A1", &rowsHeader); err != nil {
		return err
	}
	for i, r := range diag.Rows {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Personal, r.FechaVenta, r.FechaDeCobro, r.Cliente, r.DNI, r.Celular,
			r.Producto, r.MontoTotal, r.MontoDepositado, r.Diferencia,
		}
		if err := f.SetSheetRow(rowsSheet, ref, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
