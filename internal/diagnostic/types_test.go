package diagnostic

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_Add(t *testing.T) {
	var d Diagnostics

	d.AddWarning(CodeDuplicateKey, 3, "key %q repeated", "a")
	d.AddInfo(CodeInferredShape, 0, "shape inferred")

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, `line 3: [duplicate_key] key "a" repeated`, d.Warnings[0].String())
	assert.Equal(t, "[inferred_shape] shape inferred", d.Infos[0].String())
	assert.Equal(t, "warning", d.Warnings[0].Severity.String())
	assert.Equal(t, "info", d.Infos[0].Severity.String())
	assert.Equal(t, "unknown", Severity(7).String())
}

func TestDiagnostics_LenOnReturnedValue(t *testing.T) {
	collect := func() Diagnostics {
		var d Diagnostics
		d.AddInfo(CodeSharedScalar, 1, "noted")

		return d
	}

	assert.Equal(t, 1, collect().Len())
	assert.Zero(t, Diagnostics{}.Len())
}

func TestDiagnostics_Log(t *testing.T) {
	var d Diagnostics

	d.AddWarning(CodeDuplicateKey, 1, "warned")
	d.AddInfo(CodeSharedScalar, 2, "noted")

	var buf bytes.Buffer
	d.Log(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}))

	assert.Contains(t, buf.String(), "warned")
	assert.NotContains(t, buf.String(), "noted")
}
