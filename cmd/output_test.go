package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestWriteOutput(t *testing.T) {
	r := model.Contact{FirstName: "Marie", LastName: "Durand"}

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, "json", r))
	assert.Contains(t, buf.String(), `"first_name": "Marie"`)
	assert.Contains(t, buf.String(), `"email": ""`)

	buf.Reset()
	require.NoError(t, writeOutput(&buf, "yaml", map[string]string{"domain": "foncia.com"}))
	assert.Equal(t, "domain: foncia.com\n", buf.String())

	buf.Reset()
	require.NoError(t, writeOutput(&buf, "", r))
	assert.NotEmpty(t, buf.String())

	assert.Error(t, writeOutput(&buf, "csv", r))
}
