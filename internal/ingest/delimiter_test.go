package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dataniaga/pkg/contracts/domain"
)

func TestInferDelimiter(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.Delimiter
	}{
		{
			name: "plain comma header",
			line: "InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY,Quantity",
			want: domain.DelimiterComma,
		},
		{
			name: "semicolon header",
			line: "InvoiceNo;InvoiceDate;PULAU;PRODUCT_CATEGORY;Quantity",
			want: domain.DelimiterSemicolon,
		},
		{
			name: "tab header",
			line: "InvoiceNo\tInvoiceDate\tPULAU\tPRODUCT_CATEGORY\tQuantity",
			want: domain.DelimiterTab,
		},
		{
			name: "comma wins a tie with semicolon",
			line: "a,b;c,d;e",
			want: domain.DelimiterComma,
		},
		{
			name: "comma wins a three-way tie",
			line: "a,b;c\td",
			want: domain.DelimiterComma,
		},
		{
			name: "no delimiter at all falls back to comma",
			line: "singlecolumn",
			want: domain.DelimiterComma,
		},
		{
			name: "empty line falls back to comma",
			line: "",
			want: domain.DelimiterComma,
		},
		{
			name: "semicolon must strictly exceed both",
			line: "a;b;c,d,e\tf\tg",
			want: domain.DelimiterComma,
		},
		{
			name: "tab strictly exceeds both",
			line: "a\tb\tc\td,e",
			want: domain.DelimiterTab,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferDelimiter(tt.line))
		})
	}
}
