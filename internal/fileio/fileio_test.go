package fileio

import (
	"bytes"
	"strings"
	"testing"

	excelize "github.com/xuri/excelize/v2"
)

func TestReadCSVWithHeaderRow(t *testing.T) {
	body := "report\nname,quantity\nCan,3\n,\nGlass jar, 4 \n"
	sh, err := ReadAny(strings.NewReader(body), "materials.csv", 2)
	if err != nil {
		t.Fatalf("ReadAny: %v", err)
	}
	if len(sh.Headers) != 2 || sh.Headers[0] != "name" {
		t.Fatalf("headers=%v", sh.Headers)
	}
	if len(sh.Rows) != 2 {
		t.Fatalf("expected empty line skipped, rows=%v", sh.Rows)
	}
	if sh.Rows[1]["name"] != "Glass jar" || sh.Rows[1]["quantity"] != "4" {
		t.Fatalf("row=%v", sh.Rows[1])
	}
}

func TestReadCSVSemicolonUTF8(t *testing.T) {
	src := "\uFEFFНаименование;Количество\nБанка;5\nСтекло;2\n"
	sh, err := ReadAny(strings.NewReader(src), "a.csv", 1)
	if err != nil {
		t.Fatalf("ReadAny: %v", err)
	}
	if len(sh.Rows) != 2 || sh.Rows[0]["Количество"] != "5" {
		t.Fatalf("rows=%v headers=%v", sh.Rows, sh.Headers)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"Material", "", "Qty"})
	_ = f.SetSheetRow(sheet, "A2", &[]any{"Paper", "x", 7})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	sh, err := ReadAny(&buf, "q.XLSX", 1)
	if err != nil {
		t.Fatalf("ReadAny: %v", err)
	}
	if len(sh.Headers) != 3 || sh.Headers[1] != "Column 2" {
		t.Fatalf("headers=%v", sh.Headers)
	}
	if sh.Rows[0]["Material"] != "Paper" || sh.Rows[0]["Qty"] != "7" {
		t.Fatalf("row=%v", sh.Rows[0])
	}
}

func TestReadAnyRejectsUnknownExtension(t *testing.T) {
	if _, err := ReadAny(strings.NewReader(""), "a.pdf", 1); err == nil {
		t.Fatalf("expected error")
	}
}
