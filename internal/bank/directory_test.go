package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenghao/billsnap/internal/model"
)

func TestDetect_DisplayNameRoundTrip(t *testing.T) {
	// Every issuer's display name must detect back to that issuer.
	for _, b := range All() {
		id, ok := Detect("您在" + b.Name + "的账户有一笔交易")
		require.True(t, ok, "display name %q should be detected", b.Name)
		assert.Equal(t, b.ID, id)
	}
}

func TestDetect_Acronyms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.BankID
	}{
		{"uppercase acronym", "[ICBC] transaction alert", model.BankICBC},
		{"lowercase acronym", "your icbc card was charged", model.BankICBC},
		{"cmb abbreviation", "招行信用卡消费提醒", model.BankCMB},
		{"cmbc not shadowed by cmb", "[CMBC] transaction alert", model.BankCMBC},
		{"short han alias", "工行提醒您", model.BankICBC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Detect(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestDetect_NoMatch(t *testing.T) {
	_, ok := Detect("您的快递已到达丰巢柜，取件码1234")
	assert.False(t, ok)
}

func TestBySender(t *testing.T) {
	id, ok := BySender("95588")
	require.True(t, ok)
	assert.Equal(t, model.BankICBC, id)

	_, ok = BySender("10086")
	assert.False(t, ok)
}

func TestTemplateFor_UnknownFallsBackToGeneric(t *testing.T) {
	tmpl := TemplateFor(model.BankID("unknown"))
	assert.Equal(t, generic, tmpl)

	icbc := TemplateFor(model.BankICBC)
	assert.NotEqual(t, generic, icbc)
	assert.NotEmpty(t, icbc.Amount)
}

func TestAll_TenIssuers(t *testing.T) {
	banks := All()
	assert.Len(t, banks, 10)

	seen := make(map[string]bool)
	for _, b := range banks {
		assert.False(t, seen[b.SenderCode], "duplicate sender code %s", b.SenderCode)
		seen[b.SenderCode] = true
	}
}
