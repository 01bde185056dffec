package pdftest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperand(t *testing.T) {
	assert.Equal(t, "(Tent)Tj", string(Operand("Tent")))
	assert.Equal(t, `(Bulk \(cont.\))Tj`, string(Operand("Bulk (cont.)")))
	assert.Equal(t, `(C:\\tmp)Tj`, string(Operand(`C:\tmp`)))
}

func TestShows(t *testing.T) {
	doc := []byte("BT 42.52 747.88 Td (Name: )Tj ET\nBT 60.10 747.88 Td (Camping)Tj ET\n")

	assert.True(t, Shows(doc, "Name: "))
	assert.True(t, Shows(doc, "Camping"))
	assert.False(t, Shows(doc, "Camp"))
	assert.False(t, Shows(doc, "Trip"))
	assert.Less(t, Index(doc, "Name: "), Index(doc, "Camping"))
	assert.Equal(t, -1, Index(doc, "Trip"))
}
