package appcore

import "testing"

func TestSMEMWriterFactory_NeedSeq(t *testing.T) {
	if w := NewSMEMWriterFactory("jsonl", false, true); !w.NeedSeq() {
		t.Fatal("jsonl + --seq must NeedSeq")
	}
	if w := NewSMEMWriterFactory("tsv", true, true); w.NeedSeq() {
		t.Fatal("tsv has no seq column")
	}
	if w := NewSMEMWriterFactory("json", false, false); w.NeedSeq() {
		t.Fatal("json without --seq should not need seq")
	}
}
