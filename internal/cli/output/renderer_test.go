package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/nblint/internal/cli/output"
	"github.com/leapstack-labs/nblint/internal/cli/testutil"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  output.Mode
		isTTY bool
		want  output.Mode
	}{
		{output.ModeAuto, true, output.ModeText},
		{output.ModeAuto, false, output.ModeMarkdown},
		{"", true, output.ModeText},
		{output.ModeText, false, output.ModeText},
		{output.ModeMarkdown, true, output.ModeMarkdown},
		{output.ModeJSON, true, output.ModeJSON},
		{output.ModeSARIF, false, output.ModeSARIF},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+map[bool]string{true: "/tty", false: "/pipe"}[tt.isTTY], func(t *testing.T) {
			r := output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := output.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, output.ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, output.ModeMarkdown, r.EffectiveMode())
}

func TestMode_Valid(t *testing.T) {
	for _, m := range output.Modes {
		assert.True(t, m.Valid(), m)
	}
	assert.True(t, output.Mode("").Valid())
	assert.False(t, output.Mode("xml").Valid())
	assert.Equal(t, []string{"auto", "text", "markdown", "json", "sarif"}, output.ModeNames())
}

func TestRenderer_NonTTYHasNoANSI(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	tr.Header("Rules")
	tr.Success("done")
	tr.Error("broken")
	tr.Warning("careful")

	testutil.AssertNoANSI(t, tr.Output())
	testutil.AssertNoANSI(t, tr.ErrorOutput())
	assert.Contains(t, tr.Output(), "done")
	assert.Contains(t, tr.ErrorOutput(), "error: broken")
	assert.Contains(t, tr.ErrorOutput(), "warning: careful")
}

func TestRenderer_MarkdownHeader(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	tr.Header("Rules")
	tr.Success("ok")

	assert.Equal(t, "# Rules\n\n**ok**\n", tr.Output())
	testutil.AssertValidMarkdown(t, tr.Output())
}

func TestRenderer_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	assert.NoError(t, tr.JSON(map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, tr.Output())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Summary", output.FormatHeader(2, "Summary"))
	assert.Equal(t, "# Top", output.FormatHeader(0, "Top"))
	assert.Equal(t, "###### Deep", output.FormatHeader(9, "Deep"))
	assert.Equal(t, "- **Files**: 3", output.FormatKeyValue("Files", "3"))
	assert.Equal(t, "```yaml\na: 1\n```", output.FormatCodeBlock("yaml", "a: 1\n"))
}
