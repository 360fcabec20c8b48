package quiz

import (
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "math-buddy/errors"
)

// ExtractPDFText pulls plain text out of an uploaded PDF so its contents
// can go through the same question parser as .txt uploads.
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInvalidInput, "could not open PDF: "+err.Error())
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return "", apperrors.WrapError(apperrors.ErrInvalidInput, "PDF contains no extractable text")
	}
	return extracted, nil
}
