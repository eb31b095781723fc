// file: internals/helpers/evidence_image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const evidenceMaxWidth = 1280

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	// Hapus karakter selain huruf, angka, titik, dash, underscore
	clean := filenameRe.ReplaceAllString(filename, "_")
	return strings.Trim(clean, "_")
}

// GenerateUniqueFilename membuat nama file unik: <folder>/<ts>_<uuid>_<nama>.webp
func GenerateUniqueFilename(folder, original string) string {
	base := sanitizeFilename(strings.TrimSuffix(original, filepath.Ext(original)))
	if base == "" {
		base = "evidence"
	}
	return fmt.Sprintf("%s/%d_%s_%s.webp", folder, time.Now().Unix(), uuid.NewString()[:8], base)
}

// SaveEvidenceImage menerima upload bukti pembayaran, decode, resize bila
// terlalu lebar, encode ulang ke webp dan simpan ke dir lokal.
// Mengembalikan URL publik relatif untuk disimpan di record payment.
func SaveEvidenceImage(dir, baseURL string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("file bukan gambar yang valid: %w", err)
	}

	if img.Bounds().Dx() > evidenceMaxWidth {
		img = imaging.Resize(img, evidenceMaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("gagal encode webp: %w", err)
	}

	name := GenerateUniqueFilename("payment", fileHeader.Filename)
	full := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder evidence: %w", err)
	}
	if err := os.WriteFile(full, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan gambar: %w", err)
	}

	return path.Join(baseURL, name), nil
}

// RemoveEvidenceImage: best-effort hapus file yang barusan disimpan bila
// transaksi pencatatnya gagal, supaya evidence dir tidak berisi file yatim.
func RemoveEvidenceImage(dir, baseURL, evidenceURL string) {
	rel := strings.TrimPrefix(evidenceURL, baseURL)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(dir, filepath.FromSlash(rel)))
}
