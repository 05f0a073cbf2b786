package certificate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStudent() StudentInfo {
	return StudentInfo{
		MISID:      "MIS2026-COEP-001",
		FullName:   "Asha Patil",
		Email:      "asha@example.com",
		CourseName: "Computer Engineering",
	}
}

func TestRender_AllTypes(t *testing.T) {
	renderer := NewRenderer("College of Engineering Pune")

	for _, certType := range []string{TypeBonafide, TypeLibraryCard, TypeIDCard} {
		pdf, err := renderer.Render(certType, testStudent())
		require.NoError(t, err, "type %s", certType)
		assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), "type %s should produce a PDF stream", certType)
	}
}

func TestRender_TypeCaseInsensitive(t *testing.T) {
	renderer := NewRenderer("College of Engineering Pune")

	pdf, err := renderer.Render("Bonafide", testStudent())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestRender_UnknownTypeStillProducesPDF(t *testing.T) {
	renderer := NewRenderer("College of Engineering Pune")

	pdf, err := renderer.Render("transcript", testStudent())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
