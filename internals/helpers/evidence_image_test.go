// file: internals/helpers/evidence_image_test.go
package helper

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"bukti transfer (1).jpg": "bukti_transfer_1_.jpg",
		"../../../etc/passwd":    ".._.._.._etc_passwd",
		"normal-file_01.png":     "normal-file_01.png",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateUniqueFilename(t *testing.T) {
	name := GenerateUniqueFilename("payment", "bukti transfer.jpg")
	if !strings.HasPrefix(name, "payment/") {
		t.Fatalf("expected payment/ prefix, got %q", name)
	}
	if !strings.HasSuffix(name, "_bukti_transfer.webp") {
		t.Fatalf("expected webp suffix with sanitized base, got %q", name)
	}
}

func TestGenerateUniqueFilenameEmptyBase(t *testing.T) {
	name := GenerateUniqueFilename("payment", "???.jpg")
	if !strings.HasSuffix(name, "_evidence.webp") {
		t.Fatalf("empty base should fall back to evidence, got %q", name)
	}
}
