package lspserver

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"

	"control/internal/constprop"
)

func TestWordAtExtractsIdentifier(t *testing.T) {
	content := "  x_1 + y"
	word := wordAt(content, protocol.Position{Line: 0, Character: 3})
	assert.Equal(t, "x_1", word)
}

func TestWordAtOutOfRangeReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", wordAt("short", protocol.Position{Line: 5, Character: 0}))
	assert.Equal(t, "", wordAt("short", protocol.Position{Line: 0, Character: 99}))
}

func TestSortedKeysIsDeterministic(t *testing.T) {
	m := map[string]*constprop.Store{
		"zebra": constprop.NewStore(),
		"alpha": constprop.NewStore(),
		"mid":   constprop.NewStore(),
	}
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, sortedKeys(m))
}

func TestNewHandlerHasEmptyDocumentSet(t *testing.T) {
	h := NewHandler()
	assert.Empty(t, h.docs)
}
