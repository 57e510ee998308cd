package domain

import (
	"math/rand"
	"strings"
)

// DocumentKind distinguishes the two national tax identifier formats.
type DocumentKind string

const (
	DocumentCPF  DocumentKind = "cpf"
	DocumentCNPJ DocumentKind = "cnpj"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

// Document is a validated national tax identifier. Values are stored
// normalized: digits only, left-padded with zeros to the fixed length.
type Document struct {
	kind  DocumentKind
	value string
}

func (d Document) Kind() DocumentKind {
	return d.kind
}

func (d Document) String() string {
	return d.value
}

// ParseDocument auto-detects the variant: up to 11 significant digits is a
// CPF, anything longer is a CNPJ.
func ParseDocument(value string) (Document, error) {
	if len(onlyDigits(value)) <= cpfLength {
		return NewCPF(value)
	}
	return NewCNPJ(value)
}

// NewCPF validates an 11-digit identifier: two check digits computed with a
// weighted sum, weights descending from position+1.
func NewCPF(value string) (Document, error) {
	cpf := leftPad(onlyDigits(value), cpfLength)

	if len(cpf) != cpfLength || allSameDigit(cpf) {
		return Document{}, NewInvalidDocumentError(DocumentCPF, value)
	}

	if !cpfCheckDigitValid(cpf, 9) || !cpfCheckDigitValid(cpf, 10) {
		return Document{}, NewInvalidDocumentError(DocumentCPF, value)
	}

	return Document{kind: DocumentCPF, value: cpf}, nil
}

// NewCNPJ validates a 14-digit identifier using the fixed positional weight
// tables for both check digits.
func NewCNPJ(value string) (Document, error) {
	cnpj := leftPad(onlyDigits(value), cnpjLength)

	if len(cnpj) != cnpjLength || allSameDigit(cnpj) {
		return Document{}, NewInvalidDocumentError(DocumentCNPJ, value)
	}

	if !cnpjCheckDigitValid(cnpj, 12) || !cnpjCheckDigitValid(cnpj, 13) {
		return Document{}, NewInvalidDocumentError(DocumentCNPJ, value)
	}

	return Document{kind: DocumentCNPJ, value: cnpj}, nil
}

// GenerateCPF produces a syntactically valid random CPF. Test support only,
// never part of the transfer hot path.
func GenerateCPF() Document {
	digits := randomDigits(9)
	digits += string('0' + byte(cpfCheckDigit(digits)))
	digits += string('0' + byte(cpfCheckDigit(digits)))

	doc, _ := NewCPF(digits)
	return doc
}

// GenerateCNPJ produces a syntactically valid random CNPJ with the usual
// "0001" branch suffix.
func GenerateCNPJ() Document {
	digits := randomDigits(8) + "0001"
	digits += string('0' + byte(cnpjCheckDigit(digits, cnpjWeightsFirst)))
	digits += string('0' + byte(cnpjCheckDigit(digits, cnpjWeightsSecond)))

	doc, _ := NewCNPJ(digits)
	return doc
}

func cpfCheckDigitValid(cpf string, position int) bool {
	return digitAt(cpf, position) == cpfCheckDigit(cpf[:position])
}

// cpfCheckDigit weighs each digit by (len+1−index); (sum*10) mod 11 maps 10
// to 0.
func cpfCheckDigit(base string) int {
	factor := len(base) + 1
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += digitAt(base, i) * (factor - i)
	}

	remainder := (sum * 10) % 11
	if remainder >= 10 {
		return 0
	}
	return remainder
}

var (
	cnpjWeightsFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func cnpjCheckDigitValid(cnpj string, position int) bool {
	weights := cnpjWeightsFirst
	if position == 13 {
		weights = cnpjWeightsSecond
	}
	return digitAt(cnpj, position) == cnpjCheckDigit(cnpj[:position], weights)
}

// cnpjCheckDigit: weighted sum mod 11, remainder under 2 maps to 0, otherwise
// 11−remainder.
func cnpjCheckDigit(base string, weights []int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += digitAt(base, i) * weights[i]
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func onlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func leftPad(value string, length int) string {
	if len(value) >= length {
		return value
	}
	return strings.Repeat("0", length-len(value)) + value
}

func allSameDigit(value string) bool {
	for i := 1; i < len(value); i++ {
		if value[i] != value[0] {
			return false
		}
	}
	return true
}

func digitAt(value string, i int) int {
	return int(value[i] - '0')
}

func randomDigits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte('0' + byte(rand.Intn(10)))
	}
	return b.String()
}
