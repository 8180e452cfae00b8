package demanda

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type person struct {
	name string
	city string
}

func personColumns() []Column[person] {
	return []Column[person]{
		{Label: "Nome", Value: func(p person) string { return p.name }},
		{Label: "Cidade", Value: func(p person) string { return p.city }},
	}
}

func TestBuildCSVQuoting(t *testing.T) {
	rows := []person{
		{name: "Smith, J.", city: "Fortaleza"},
		{name: `Maria "Mari" Souza`, city: "Sobral"},
		{name: "linha\nquebrada", city: "Crato"},
	}
	out, err := BuildCSV(rows, personColumns(), ',')
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.SplitN(out, "\n", 2)
	if lines[0] != "Nome,Cidade" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, `"Smith, J.",Fortaleza`) {
		t.Errorf("comma value not quoted:\n%s", out)
	}
	if !strings.Contains(out, `"Maria ""Mari"" Souza",Sobral`) {
		t.Errorf("quotes not doubled:\n%s", out)
	}
	if !strings.Contains(out, "\"linha\nquebrada\",Crato") {
		t.Errorf("newline value not quoted:\n%s", out)
	}
}

func TestBuildCSVDelimiter(t *testing.T) {
	rows := []person{{name: "Smith, J.", city: "Fortaleza"}}

	// With ";" a comma is plain text and needs no quoting.
	out, err := BuildCSV(rows, personColumns(), ';')
	if err != nil {
		t.Fatal(err)
	}
	if out != "Nome;Cidade\nSmith, J.;Fortaleza" {
		t.Errorf("got:\n%s", out)
	}
}

func TestBuildCSVEmpty(t *testing.T) {
	_, err := BuildCSV(nil, personColumns(), ';')
	if !errors.Is(err, ErrNothingToExport) {
		t.Errorf("err = %v, want ErrNothingToExport", err)
	}
}

func TestEncodeWindows1252(t *testing.T) {
	got := EncodeWindows1252("Climatização")
	want := []byte{'C', 'l', 'i', 'm', 'a', 't', 'i', 'z', 'a', 0xE7, 0xE3, 'o'}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeWindows1252 = % x, want % x", got, want)
	}
}
