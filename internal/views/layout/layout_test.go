package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestPageRendersProvidedContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<section>laporan</section>"))
		return err
	})

	var buf bytes.Buffer
	if err := Page("Laporan <Gizi>", content).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render page: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Laporan &lt;Gizi&gt;</title>") {
		t.Fatalf("expected escaped document title: %s", out)
	}
	if !strings.Contains(out, "<section>laporan</section>") {
		t.Fatalf("expected content in output: %s", out)
	}
	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Fatalf("expected doctype first: %s", out)
	}
	if !strings.HasSuffix(out, "</html>") {
		t.Fatalf("expected closed document: %s", out)
	}
}

func TestPageWithoutContent(t *testing.T) {
	var buf bytes.Buffer
	if err := Page("Kosong", nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.Contains(buf.String(), "<main") {
		t.Fatalf("expected main element: %s", buf.String())
	}
}
