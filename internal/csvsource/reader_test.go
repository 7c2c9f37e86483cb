package csvsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_BasicFile(t *testing.T) {
	input := "Email,Name,Score\na@x.com,Alice,10\nb@x.com,Bob,20\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{"email": "a@x.com", "name": "Alice", "score": "10"}, records[0])
	assert.Equal(t, Record{"email": "b@x.com", "name": "Bob", "score": "20"}, records[1])
}

func TestRead_SkipsEmptyRowsAndLeadingBlanks(t *testing.T) {
	input := ",,\nEmail,Name\na@x.com,Alice\n,,\nb@x.com,Bob\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a@x.com", records[0]["email"])
	assert.Equal(t, "b@x.com", records[1]["email"])
}

func TestRead_RaggedRows(t *testing.T) {
	input := "email,name,score\na@x.com,Alice\nb@x.com,Bob,20,extra\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	_, hasScore := records[0]["score"]
	assert.False(t, hasScore, "short row must not carry trailing keys")
	assert.Equal(t, "20", records[1]["score"])
}

func TestRead_CleansExcelArtifacts(t *testing.T) {
	input := "id,email\n=\"0042\",  a@x.com  \n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0042", records[0]["id"])
	assert.Equal(t, "a@x.com", records[0]["email"])
}

func TestRead_NoHeader(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("\n,,\n"))
	assert.Error(t, err)
}

func TestRead_HeaderOnly(t *testing.T) {
	records, err := Read(strings.NewReader("email,name\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProcessor_ValidatesRequiredColumns(t *testing.T) {
	proc := Processor([]string{"Email"}, nil)

	assert.True(t, proc.Validate(Record{"email": "a@x.com"}))
	assert.False(t, proc.Validate(Record{"email": ""}))
	assert.False(t, proc.Validate(Record{"name": "no email column"}))
}

func TestProcessor_FormatsSelectedColumns(t *testing.T) {
	proc := Processor(nil, []string{"email", "score"})

	row := proc.Format(Record{"email": "a@x.com", "name": "Alice", "score": "10"})
	require.Len(t, row, 2)
	assert.Equal(t, "a@x.com", row["email"])
	assert.Equal(t, "10", row["score"])
}

func TestProcessor_EmptyCellsBecomeNull(t *testing.T) {
	proc := Processor(nil, []string{"email", "score"})

	row := proc.Format(Record{"email": "a@x.com", "score": ""})
	assert.Equal(t, "a@x.com", row["email"])
	assert.Nil(t, row["score"])
}

func TestProcessor_NoColumnFilterMapsEverything(t *testing.T) {
	proc := Processor(nil, nil)

	row := proc.Format(Record{"email": "a@x.com", "name": "Alice"})
	assert.Len(t, row, 2)
	assert.Equal(t, "Alice", row["name"])
}
