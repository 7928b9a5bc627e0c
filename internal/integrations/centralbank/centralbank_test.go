package centralbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiffgram = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgram>
          <KeyRate>
            <KR><DT>2025-03-14T00:00:00+03:00</DT><Rate>16.00</Rate></KR>
            <KR><DT>2025-03-13T00:00:00+03:00</DT><Rate>15.50</Rate></KR>
          </KeyRate>
        </diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseKeyRate_PicksLatest(t *testing.T) {
	rate, err := parseKeyRate([]byte(sampleDiffgram))
	require.NoError(t, err)
	assert.Equal(t, 16.00, rate)
}

func TestParseKeyRate_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not xml", "{}"},
		{"no key rate rows", `<root><diffgram><KeyRate></KeyRate></diffgram></root>`},
		{"missing rate element", `<root><diffgram><KeyRate><KR><DT>x</DT></KR></KeyRate></diffgram></root>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseKeyRate([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
