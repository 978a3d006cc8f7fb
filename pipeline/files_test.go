package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMatchBankFiles(t *testing.T) {
	cfg := testConfig()
	files := []Source{
		{Name: "uploads/苏银对券.xlsx", Data: []byte("a")},
		{Name: "华夏-0115.xlsx", Data: []byte("b")},
		{Name: "unrelated.xlsx", Data: []byte("c")},
		{Name: "苏银对券(更新).xlsx", Data: []byte("d")},
	}
	got := MatchBankFiles(cfg, files)

	if len(got) != 2 {
		t.Fatalf("expected 2 matched banks, got %v", got)
	}
	if string(got["苏银"].Data) != "d" {
		t.Errorf("expected later file to win for 苏银, got %q", got["苏银"].Name)
	}
	if got["华夏"].Name != "华夏-0115.xlsx" {
		t.Errorf("unexpected 华夏 match %q", got["华夏"].Name)
	}
}

func TestBankFilesFromDir(t *testing.T) {
	cfg := testConfig()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "联储对券.xlsx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BankFilesFromDir(cfg, dir)
	if err != nil {
		t.Fatalf("BankFilesFromDir: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only 联储, got %v", got)
	}
	if src, ok := got["联储"]; !ok || string(src.Data) != "x" {
		t.Errorf("unexpected 联储 source %+v", src)
	}
}

func TestOutputName(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.Local)
	if got := OutputName(cfg, now); got != "银行间对账_1015.xlsx" {
		t.Errorf("OutputName = %q", got)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Source: "bank 申万", Reason: "no collateral file, all rates left blank"}
	if w.String() != "bank 申万: no collateral file, all rates left blank" {
		t.Errorf("unexpected %q", w.String())
	}
	w = Warning{Source: "positions", Row: 7, Field: "中债估值", Value: "x", Reason: "valuation is not a number, using 0"}
	if w.String() != `positions row 7 中债估值="x": valuation is not a number, using 0` {
		t.Errorf("unexpected %q", w.String())
	}
}
