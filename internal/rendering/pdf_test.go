package rendering

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func newTestRenderer() *Renderer {
	return NewRenderer(func() time.Time { return fixedNow })
}

func TestRender_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	res, err := newTestRenderer().Render(sampleProfile(), "c-42", &buf)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "RICHAT-c-42", res.ID)
	assert.GreaterOrEqual(t, res.Pages, 1)
	assert.Equal(t, int64(buf.Len()), res.Bytes)
	assert.Equal(t, fixedNow, res.GeneratedAt)
	assert.Equal(t, 80, res.QualityScore)
	assert.Equal(t, 90, res.ComplianceScore)
}

func TestRender_EmptyProfile(t *testing.T) {
	var buf bytes.Buffer
	res, err := newTestRenderer().Render(types.NewProfile(), "", &buf)
	require.NoError(t, err)
	assert.Equal(t, "RICHAT-20240305143000", res.ID)
	assert.Greater(t, buf.Len(), 0)
}

func TestRender_LongProfilePaginates(t *testing.T) {
	p := sampleProfile()
	long := strings.Repeat("Pilotage des travaux de revue et de certification des comptes. ", 6)
	for i := 0; i < 30; i++ {
		p.Experience = append(p.Experience, types.Experience{
			Period:   fmt.Sprintf("%d-%d", 1990+i, 1991+i),
			Employer: "Cabinet",
			Country:  "Mauritanie",
			Summary:  long,
		})
	}

	var buf bytes.Buffer
	res, err := newTestRenderer().Render(p, "c-1", &buf)
	require.NoError(t, err)
	assert.Greater(t, res.Pages, 1)
}

func TestRender_NonLatinText(t *testing.T) {
	p := sampleProfile()
	p.PersonalInfo.ExpertName = "محمد ولد أحمد"

	var buf bytes.Buffer
	_, err := newTestRenderer().Render(p, "c-2", &buf)
	assert.NoError(t, err)
}

func TestRender_NilProfile(t *testing.T) {
	_, err := newTestRenderer().Render(nil, "c-1", &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, types.CodePDFRenderFailed, types.CodeOf(err))
}

func TestRender_WriterFailure(t *testing.T) {
	_, err := newTestRenderer().Render(sampleProfile(), "c-1", failingWriter{})
	require.Error(t, err)
	assert.Equal(t, types.CodePDFRenderFailed, types.CodeOf(err))

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRenderError_Message(t *testing.T) {
	err := &RenderError{Message: "failed to write PDF", Cause: errors.New("boom")}
	assert.Equal(t, "render error: failed to write PDF: boom", err.Error())
	assert.Equal(t, "render error: bare", (&RenderError{Message: "bare"}).Error())
}
